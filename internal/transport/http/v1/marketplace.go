package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// ListListings lists listings.
// GET /api/marketplace/listings?category=&location=&provider_id=
func (h *Handler) ListListings(c echo.Context) error {
	listings, err := h.service.ListListings(c.Request().Context(),
		c.QueryParam("category"), c.QueryParam("location"), c.QueryParam("provider_id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listings)
}

// GetListing returns a listing.
// GET /api/marketplace/listings/:id
func (h *Handler) GetListing(c echo.Context) error {
	listing, err := h.service.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

// CreateListing publishes a listing.
// POST /api/marketplace/listings
func (h *Handler) CreateListing(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	listing, err := h.service.CreateListing(c.Request().Context(), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, listing)
}

// UpdateListing updates a listing.
// PUT /api/marketplace/listings/:id
func (h *Handler) UpdateListing(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	listing, err := h.service.UpdateListing(c.Request().Context(), c.Param("id"), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

// DeleteListing deletes a listing.
// DELETE /api/marketplace/listings/:id
func (h *Handler) DeleteListing(c echo.Context) error {
	if err := h.service.DeleteListing(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateBooking books a listing.
// POST /api/marketplace/bookings
func (h *Handler) CreateBooking(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	booking, err := h.service.CreateBooking(c.Request().Context(), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListBookings lists a user's bookings.
// GET /api/marketplace/bookings?user_id=
func (h *Handler) ListBookings(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}
	bookings, err := h.service.ListBookings(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus changes a booking's status.
// PUT /api/marketplace/bookings/:id
func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	var req struct {
		Status domain.BookingStatus `json:"status"`
	}
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	booking, err := h.service.UpdateBookingStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}
