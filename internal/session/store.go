// Package session holds the identity of the user currently logged in on this client.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// Session is a snapshot of the authenticated identity.
type Session struct {
	UserID      string
	Username    string
	AccountType domain.AccountType
	AccessToken string
}

// IsLoggedIn reports whether both identifying fields are set.
func (s Session) IsLoggedIn() bool {
	return s.UserID != "" && s.Username != ""
}

// Store is the single source of truth for who is logged in. It is created
// empty, filled on login or signup and emptied on logout. Nothing is persisted.
type Store struct {
	mu      sync.RWMutex
	current Session
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// SetSession overwrites the current session.
func (s *Store) SetSession(userID, username string, accountType domain.AccountType, accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{
		UserID:      userID,
		Username:    username,
		AccountType: accountType,
		AccessToken: accessToken,
	}
}

// Clear resets all fields.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
}

// IsLoggedIn reports whether a user is logged in.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsLoggedIn()
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// AccessToken returns the bearer token, or "" when there is none.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AccessToken
}

// TokenExpiry returns the exp claim of the access token. The signature is not
// checked; only the server can do that. ok is false when there is no token or
// it carries no expiry.
func (s *Store) TokenExpiry() (exp time.Time, ok bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the access token carries an expiry that has passed.
func (s *Store) Expired(now time.Time) bool {
	exp, ok := s.TokenExpiry()
	return ok && !now.Before(exp)
}
