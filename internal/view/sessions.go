package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	page     *Page
	lastSeen time.Time
}

// Sessions keeps one Page per visitor in memory. Pages idle for longer than the TTL are dropped.
type Sessions struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	pages map[string]*session
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[string]*session),
	}
}

// Get returns the page for id. A new session is started when id is unknown or expired;
// the returned id is the one to hand back to the visitor.
func (s *Sessions) Get(id string) (string, *Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evict(now)

	if sess, ok := s.pages[id]; ok {
		sess.lastSeen = now
		return id, sess.page
	}

	id = uuid.NewString()
	sess := &session{page: NewPage(), lastSeen: now}
	s.pages[id] = sess
	return id, sess.page
}

// Lookup returns the page for id without starting a session.
func (s *Sessions) Lookup(id string) (*Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evict(now)

	sess, ok := s.pages[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = now
	return sess.page, true
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

func (s *Sessions) evict(now time.Time) {
	for id, sess := range s.pages {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.pages, id)
		}
	}
}
