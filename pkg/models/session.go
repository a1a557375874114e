package models

import (
	"sync"
	"sync/atomic"
)

// Session carries the display and cancellation flags shared between the
// workflow and the input surface.
//
// The display flags are only changed through TryAcquire and its release
// func. The stop flag may be raised by the input side at any time (including
// from a signal handler goroutine) and is cleared by the workflow once it has
// been observed.
type Session struct {
	mu              sync.Mutex
	inputHidden     bool
	placeholderMode bool

	stop atomic.Bool
}

// NewSession returns a session with every flag cleared
func NewSession() *Session {
	return &Session{}
}

// TryAcquire hides echoed input and enters placeholder mode unless a
// workflow already holds the session, in which case ok is false. The release
// func restores both flags and clears any pending stop request; only its
// first call has an effect.
func (s *Session) TryAcquire() (release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.placeholderMode {
		return nil, false
	}
	s.inputHidden = true
	s.placeholderMode = true

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.inputHidden = false
			s.placeholderMode = false
			s.mu.Unlock()
			s.stop.Store(false)
		})
	}, true
}

// InputHidden reports whether accepted answers should not be echoed
func (s *Session) InputHidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputHidden
}

// PlaceholderMode reports whether a workflow currently owns the display
func (s *Session) PlaceholderMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placeholderMode
}

// RequestStop asks the running workflow to abandon its pending steps
func (s *Session) RequestStop() {
	s.stop.Store(true)
}

// StopRequested reports whether cancellation has been requested
func (s *Session) StopRequested() bool {
	return s.stop.Load()
}

// ClearStop resets the cancellation flag
func (s *Session) ClearStop() {
	s.stop.Store(false)
}
