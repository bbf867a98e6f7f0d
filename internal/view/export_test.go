package view

import "time"

func (s *Sessions) SetClock(now func() time.Time) {
	s.now = now
}
