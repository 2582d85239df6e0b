// Package service implements the development backend behind the HTTP handlers.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hayawalid/smartexplorers/internal/auth"
	"github.com/hayawalid/smartexplorers/internal/config"
	store "github.com/hayawalid/smartexplorers/internal/repository"
)

// Error kinds. Handlers map them to HTTP status codes.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error carries a user-facing detail message and one of the error kinds.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Service holds the backend dependencies.
type Service struct {
	store  store.Store
	tokens *auth.TokenManager
	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new service.
func New(store store.Store, tokens *auth.TokenManager, cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		tokens: tokens,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Tokens returns the token manager used to authenticate requests.
func (s *Service) Tokens() *auth.TokenManager {
	return s.tokens
}
