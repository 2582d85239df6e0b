package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// GetTravelerProfile returns a traveler profile.
// GET /api/profiles/travelers/:id
func (h *Handler) GetTravelerProfile(c echo.Context) error {
	profile, err := h.service.GetTravelerProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// CreateTravelerProfile creates a traveler profile.
// POST /api/profiles/travelers
func (h *Handler) CreateTravelerProfile(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := h.service.CreateTravelerProfile(c.Request().Context(), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, profile)
}

// UpdateTravelerProfile updates a traveler profile.
// PUT /api/profiles/travelers/:id
func (h *Handler) UpdateTravelerProfile(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := h.service.UpdateTravelerProfile(c.Request().Context(), c.Param("id"), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// ListProviders lists provider profiles.
// GET /api/profiles/providers?service_type=
func (h *Handler) ListProviders(c echo.Context) error {
	providers, err := h.service.ListProviders(c.Request().Context(), c.QueryParam("service_type"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, providers)
}

// GetProviderProfile returns a provider profile.
// GET /api/profiles/providers/:id
func (h *Handler) GetProviderProfile(c echo.Context) error {
	profile, err := h.service.GetProviderProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// CreateProviderProfile creates a provider profile and its admin request.
// POST /api/profiles/providers
func (h *Handler) CreateProviderProfile(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := h.service.CreateProviderProfile(c.Request().Context(), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, profile)
}

// UpdateProviderProfile updates a provider profile.
// PUT /api/profiles/providers/:id
func (h *Handler) UpdateProviderProfile(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := h.service.UpdateProviderProfile(c.Request().Context(), c.Param("id"), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateVerification sets a provider's verification status.
// PUT /api/profiles/providers/:id/verification
func (h *Handler) UpdateVerification(c echo.Context) error {
	var req struct {
		VerificationStatus domain.VerificationStatus `json:"verification_status"`
	}
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := h.service.UpdateVerification(c.Request().Context(), c.Param("id"), req.VerificationStatus)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
