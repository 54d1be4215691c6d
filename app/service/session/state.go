// Package session holds the process-wide mutable session state. It is an
// explicit injected dependency rather than a package-level singleton so tests
// can run independent sessions side by side.
package session

import (
	"sync"

	"github.com/samber/do"
)

type State struct {
	mu sync.RWMutex

	degraded   bool
	dailyFocus bool
}

func New(_ *do.Injector) (*State, error) {
	return &State{}, nil
}

// Degraded reports whether the last live attempt failed. It only drives the
// UI badge; the resolver still tries the live path on every send.
func (s *State) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.degraded
}

func (s *State) SetDegraded(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.degraded = v
}

func (s *State) DailyFocus() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dailyFocus
}

// ToggleDailyFocus flips the flag and returns the new value.
func (s *State) ToggleDailyFocus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dailyFocus = !s.dailyFocus

	return s.dailyFocus
}
