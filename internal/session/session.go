package session

import (
	"sync"

	"journal/internal/entity"
)

// Session holds the currently authenticated user. It is transient and never
// persisted: restarting the process logs everyone out. The mutex guards the
// slot against concurrent callers. The slot is login state for the
// single-operator flows, which pass Current as the acting user; it is never
// consulted to attribute an HTTP request, the middleware resolves that user
// per request from the cookie.
type Session struct {
	mu      sync.RWMutex
	current *entity.User
}

func New() *Session {
	return &Session{}
}

// Current returns the logged in user, or nil when no one is logged in.
func (s *Session) Current() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set makes user the session's current user.
func (s *Session) Set(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = user
}

// Clear logs the current user out. Calling it with no one logged in is fine.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
