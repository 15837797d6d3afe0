// ABOUTME: Session context carrying the bearer credential and 401 teardown hook
// ABOUTME: Implements oauth2.TokenSource so the HTTP client injects the Authorization header
package api

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Session holds the bearer credential for one signed-in user. It is passed
// explicitly to every client rather than living in a process-wide store, and
// the unauthorized hook makes the 401-to-signout path testable in isolation.
type Session struct {
	mu             sync.RWMutex
	bearer         string
	userID         uuid.UUID
	onUnauthorized func()
}

// NewSession creates a session. onUnauthorized may be nil; when set it runs
// exactly once per teardown, after the credential has been cleared.
func NewSession(bearer string, userID uuid.UUID, onUnauthorized func()) *Session {
	return &Session{bearer: bearer, userID: userID, onUnauthorized: onUnauthorized}
}

// Token implements oauth2.TokenSource. It fails when no credential is held so
// requests fail fast instead of reaching the server unauthenticated.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bearer == "" {
		return nil, ErrNotLoggedIn
	}
	return &oauth2.Token{AccessToken: s.bearer}, nil
}

// Bearer returns the raw credential, or "" when signed out.
func (s *Session) Bearer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bearer
}

// UserID returns the signed-in user's ID.
func (s *Session) UserID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// SignIn installs a fresh credential.
func (s *Session) SignIn(bearer string, userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bearer = bearer
	s.userID = userID
}

// Unauthorized clears the credential and fires the teardown hook. Called by
// the client on any 401 response.
func (s *Session) Unauthorized() {
	s.mu.Lock()
	cleared := s.bearer != ""
	s.bearer = ""
	hook := s.onUnauthorized
	s.mu.Unlock()

	if cleared && hook != nil {
		hook()
	}
}
