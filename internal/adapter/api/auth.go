package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/fixtures"
)

// AuthClient calls the auth endpoints. Successful logins and signups update
// the session store.
type AuthClient struct {
	t       *transport
	offline bool
}

// Signup creates an account and logs it in.
// POST /api/auth/signup
func (c *AuthClient) Signup(ctx context.Context, req domain.SignupRequest, opts ...CallOption) (*domain.AuthResponse, error) {
	if c.offline {
		resp := &domain.AuthResponse{
			UserID:      "offline_" + uuid.New().String()[:8],
			Username:    req.Username,
			AccountType: req.AccountType,
		}
		c.t.session.SetSession(resp.UserID, resp.Username, resp.AccountType, "")
		return resp, nil
	}

	var resp domain.AuthResponse
	if _, err := c.t.call(ctx, request{
		op:     "signup",
		method: http.MethodPost,
		path:   config.AuthEndpoint + "/signup",
		body:   req,
	}, &resp, resolve(Raise, opts)); err != nil {
		return nil, err
	}

	c.t.session.SetSession(resp.UserID, resp.Username, resp.AccountType, resp.AccessToken)
	return &resp, nil
}

// Login authenticates with a username or email.
// POST /api/auth/login
func (c *AuthClient) Login(ctx context.Context, req domain.LoginRequest, opts ...CallOption) (*domain.AuthResponse, error) {
	if c.offline {
		user, ok := fixtures.Authenticate(req.Username, req.Password)
		if !ok {
			return nil, ErrInvalidCredentials
		}
		resp := &domain.AuthResponse{UserID: user.UserID, Username: user.Username, AccountType: user.AccountType}
		c.t.session.SetSession(resp.UserID, resp.Username, resp.AccountType, "")
		return resp, nil
	}

	var resp domain.AuthResponse
	if _, err := c.t.call(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   config.AuthEndpoint + "/login",
		body:   req,
	}, &resp, resolve(Raise, opts)); err != nil {
		return nil, err
	}

	c.t.session.SetSession(resp.UserID, resp.Username, resp.AccountType, resp.AccessToken)
	return &resp, nil
}

// Logout clears the local session and then tells the backend. The local
// session is cleared even if the backend cannot be reached.
// POST /api/auth/logout
func (c *AuthClient) Logout(ctx context.Context, opts ...CallOption) error {
	token := c.t.session.AccessToken()
	c.t.session.Clear()
	if c.offline || token == "" {
		return nil
	}

	_, err := c.t.call(ctx, request{
		op:     "logout",
		method: http.MethodPost,
		path:   config.AuthEndpoint + "/logout",
		body:   map[string]string{"access_token": token},
		token:  token,
	}, nil, resolve(ReturnEmpty, opts))
	return err
}

// Me returns the account of the logged-in user.
// GET /api/auth/me
func (c *AuthClient) Me(ctx context.Context, opts ...CallOption) (*domain.User, error) {
	var user domain.User
	if _, err := c.t.call(ctx, request{
		op:     "me",
		method: http.MethodGet,
		path:   config.AuthEndpoint + "/me",
		auth:   true,
	}, &user, resolve(Raise, opts)); err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckUsername reports whether username is still free. Failures report false.
// GET /api/auth/check-username?username=
func (c *AuthClient) CheckUsername(ctx context.Context, username string, opts ...CallOption) (bool, error) {
	var resp struct {
		Available bool `json:"available"`
	}
	ok, err := c.t.call(ctx, request{
		op:     "check_username",
		method: http.MethodGet,
		path:   config.AuthEndpoint + "/check-username",
		query:  url.Values{"username": {username}},
	}, &resp, resolve(ReturnEmpty, opts))
	if err != nil || !ok {
		return false, err
	}
	return resp.Available, nil
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *AuthClient) Close() {}
