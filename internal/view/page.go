// Package view holds the presentation boundary of a weather lookup: one input field and
// five text targets that the lookup handler writes to.
package view

import (
	"sync"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

// Display is what the lookup handler reads the city from and renders into.
type Display interface {
	Input() string
	SetResult(f models.Fields)
	SetError(msg string)
}

// State is a point-in-time copy of a page.
type State struct {
	CityInput    string
	CityName     string
	Temperature  string
	Description  string
	Humidity     string
	ErrorMessage string
}

// Page is an in-memory Display safe for concurrent use. Writes from overlapping lookups
// are applied in the order they resolve.
type Page struct {
	mu    sync.RWMutex
	state State
}

func NewPage() *Page {
	return &Page{}
}

func (p *Page) SetInput(city string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.CityInput = city
}

func (p *Page) Input() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.CityInput
}

// SetResult replaces all four result fields at once.
func (p *Page) SetResult(f models.Fields) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.CityName = f.CityName
	p.state.Temperature = f.Temperature
	p.state.Description = f.Description
	p.state.Humidity = f.Humidity
}

func (p *Page) SetError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ErrorMessage = msg
}

func (p *Page) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}
