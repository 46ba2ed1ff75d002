package client

import "sync"

// Identity is what the server returned about the logged in account
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Name     string `json:"name,omitempty"` // Admin display name
}

// Session holds the credentials of one logged in user or admin.
// It is created by a successful login and cleared by Logout or by any 401.
type Session struct {
	mu       sync.RWMutex
	token    string
	identity *Identity
	admin    bool
}

func (s *Session) set(token string, identity *Identity, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.identity, s.admin = token, identity, admin
}

// Clear forgets the credentials
func (s *Session) Clear() {
	s.set("", nil, false)
}

// Token returns the bearer token, empty when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the logged in account, nil when logged out
func (s *Session) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// IsAdmin reports whether the session belongs to an administrator
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// LoggedIn reports whether a token is held
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}
