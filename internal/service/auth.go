package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/hayawalid/smartexplorers/internal/auth"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/fixtures"
	store "github.com/hayawalid/smartexplorers/internal/repository"
)

// Signup creates an account and logs it in.
func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, newError(ErrInvalidInput, "A valid email is required")
	}
	if len(req.Username) < 3 {
		return nil, newError(ErrInvalidInput, "Username must be at least 3 characters")
	}
	if len(req.Password) < 8 {
		return nil, newError(ErrInvalidInput, "Password must be at least 8 characters")
	}
	if req.AccountType == "" {
		req.AccountType = domain.AccountTypeTraveler
	}
	if !req.AccountType.Valid() || req.AccountType == domain.AccountTypeAdmin {
		return nil, newError(ErrInvalidInput, "Invalid account type")
	}

	if existing, err := s.store.GetUserByLogin(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	} else if existing != nil {
		return nil, newError(ErrConflict, "Username already registered")
	}
	if existing, err := s.store.GetUserByLogin(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	} else if existing != nil {
		return nil, newError(ErrConflict, "Email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AccountType:  req.AccountType,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "Username or email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("account created", "user_id", user.UserID, "account_type", user.AccountType)
	return s.issue(user)
}

// Login authenticates by username or email.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.store.GetUserByLogin(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || auth.CheckPassword(user.PasswordHash, req.Password) != nil {
		return nil, newError(ErrUnauthorized, "Invalid username or password")
	}
	if user.Suspended {
		return nil, newError(ErrForbidden, "Account suspended")
	}
	return s.issue(user)
}

func (s *Service) issue(user *domain.User) (*domain.AuthResponse, error) {
	token, _, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		AccountType: user.AccountType,
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Logout revokes token. Unknown or expired tokens are ignored.
func (s *Service) Logout(token string) {
	if token == "" {
		return
	}
	if err := s.tokens.Revoke(token); err != nil {
		s.logger.Debug("logout with unusable token", "error", err)
	}
}

// Me returns the account behind userID.
func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}
	return user, nil
}

// UsernameAvailable reports whether username is unused.
func (s *Service) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return false, nil
	}
	user, err := s.store.GetUserByLogin(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return user == nil, nil
}

// SeedUsers inserts the fixture accounts, skipping those already present.
func (s *Service) SeedUsers(ctx context.Context, users []fixtures.DummyUser) error {
	for _, u := range users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Username, err)
		}
		err = s.store.CreateUser(ctx, &domain.User{
			UserID:       u.UserID,
			Email:        u.Email,
			Username:     u.Username,
			PasswordHash: hash,
			FullName:     u.FullName,
			Phone:        u.Phone,
			AccountType:  u.AccountType,
			CreatedAt:    s.now(),
		})
		if err != nil && !store.IsUniqueViolation(err) {
			return fmt.Errorf("failed to seed %s: %w", u.Username, err)
		}
	}
	return nil
}
