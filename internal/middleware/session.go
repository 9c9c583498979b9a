package middleware

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionMaxAge is how long a login stays valid.
const SessionMaxAge = 30 * 24 * time.Hour

// Sessions keeps the tokens issued by successful logins.
type Sessions struct {
	tokens map[string]time.Time // token -> expiry
	mu     sync.Mutex
	now    func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Create issues a new random token valid for SessionMaxAge.
func (s *Sessions) Create() string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = s.now().Add(SessionMaxAge)
	return token
}

// Valid reports whether token was issued and has not expired or been revoked.
func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke forgets token.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
