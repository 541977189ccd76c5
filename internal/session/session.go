// Package session holds the signed-in user's credentials with an explicit
// lifecycle: set on login, cleared on logout. Data-fetching clients receive a
// *Session instead of reading ambient global state.
package session

import "sync"

// Session carries the bearer token and user id for upstream API calls.
// Safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	userID string
	token  string
}

// New returns an empty (signed-out) session.
func New() *Session {
	return &Session{}
}

// Begin records the credentials obtained at login.
func (s *Session) Begin(userID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.token = token
}

// End clears the session on logout or auth failure.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.token = ""
}

// Token returns the bearer token, with ok=false when signed out.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// UserID returns the signed-in user id, empty when signed out.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Active reports whether a login has been recorded.
func (s *Session) Active() bool {
	_, ok := s.Token()
	return ok
}
