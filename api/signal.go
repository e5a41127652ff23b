package api

import "sync"

// Signal is the process-wide unauthorized broadcast. It holds at most one
// listener at a time; Notify delivers synchronously to whoever is
// registered at that moment and is lost when nobody is. There is no
// queueing, because the session manager is registered for as long as the
// application runs.
type Signal struct {
	mu       sync.Mutex
	listener func()
}

func NewSignal() *Signal {
	return &Signal{}
}

// SetListener registers fn as the single listener, replacing any
// previous one.
func (s *Signal) SetListener(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = fn
}

// ClearListener removes the current listener. Subsequent Notify calls
// are dropped until a new listener registers.
func (s *Signal) ClearListener() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = nil
}

// Notify delivers the signal to the current listener, if any. The
// listener runs outside the lock so it may re-register or clear itself.
func (s *Signal) Notify() {
	s.mu.Lock()
	fn := s.listener
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
