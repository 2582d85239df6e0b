package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/transport/http/middleware"
)

// Signup creates an account.
// POST /api/auth/signup
func (h *Handler) Signup(c echo.Context) error {
	var req domain.SignupRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.service.Signup(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login authenticates by username or email.
// POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	var req domain.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password are required")
	}

	resp, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the token from the header or the body.
// POST /api/auth/logout
func (h *Handler) Logout(c echo.Context) error {
	var req struct {
		AccessToken string `json:"access_token"`
	}
	_ = bindBody(c, &req)

	token := middleware.BearerToken(c)
	if token == "" {
		token = req.AccessToken
	}
	h.service.Logout(token)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the authenticated account.
// GET /api/auth/me
func (h *Handler) Me(c echo.Context) error {
	user, err := h.service.Me(c.Request().Context(), currentUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// CheckUsername reports whether a username is free.
// GET /api/auth/check-username?username=
func (h *Handler) CheckUsername(c echo.Context) error {
	available, err := h.service.UsernameAvailable(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"available": available})
}
