package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// Stats returns dashboard counters.
// GET /api/admin/stats
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ProviderRequests lists provider applications.
// GET /api/admin/provider-requests?status=
func (h *Handler) ProviderRequests(c echo.Context) error {
	requests, err := h.service.ProviderRequests(c.Request().Context(), domain.ProviderRequestStatus(c.QueryParam("status")))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// ApproveProvider approves an application.
// POST /api/admin/provider-requests/:id/approve
func (h *Handler) ApproveProvider(c echo.Context) error {
	req, err := h.service.ApproveProvider(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// RejectProvider rejects an application.
// POST /api/admin/provider-requests/:id/reject
func (h *Handler) RejectProvider(c echo.Context) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	req, err := h.service.RejectProvider(c.Request().Context(), c.Param("id"), body.Reason)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// Reports lists open reports.
// GET /api/admin/reports
func (h *Handler) Reports(c echo.Context) error {
	reports, err := h.service.Reports(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, reports)
}

// ResolveReport resolves a report.
// POST /api/admin/reports/:id/resolve
func (h *Handler) ResolveReport(c echo.Context) error {
	report, err := h.service.ResolveReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// ListUsers lists every account.
// GET /api/users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// SuspendUser suspends an account.
// PUT /api/users/:id/suspend
func (h *Handler) SuspendUser(c echo.Context) error {
	if err := h.service.SuspendUser(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
