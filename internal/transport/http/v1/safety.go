package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// GetSafetyProfile returns a safety profile.
// GET /api/safety/:id
func (h *Handler) GetSafetyProfile(c echo.Context) error {
	profile, err := h.service.GetSafetyProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateSafetyProfile updates a safety profile.
// PUT /api/safety/:id
func (h *Handler) UpdateSafetyProfile(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := h.service.UpdateSafetyProfile(c.Request().Context(), c.Param("id"), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// ListContacts lists emergency contacts.
// GET /api/safety/:id/contacts
func (h *Handler) ListContacts(c echo.Context) error {
	contacts, err := h.service.ListContacts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// AddContact adds an emergency contact.
// POST /api/safety/:id/contacts
func (h *Handler) AddContact(c echo.Context) error {
	var contact domain.EmergencyContact
	if err := bindBody(c, &contact); err != nil {
		return badRequest(c, "invalid request body")
	}
	created, err := h.service.AddContact(c.Request().Context(), c.Param("id"), contact)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// RemoveContact removes an emergency contact.
// DELETE /api/safety/:id/contacts/:contact_id
func (h *Handler) RemoveContact(c echo.Context) error {
	if err := h.service.RemoveContact(c.Request().Context(), c.Param("id"), c.Param("contact_id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TriggerPanic raises a panic event.
// POST /api/safety/:id/panic-events
func (h *Handler) TriggerPanic(c echo.Context) error {
	var ev domain.PanicEvent
	if err := bindBody(c, &ev); err != nil {
		return badRequest(c, "invalid request body")
	}
	event, err := h.service.TriggerPanic(c.Request().Context(), c.Param("id"), ev)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

// ListPanicEvents lists panic events.
// GET /api/safety/:id/panic-events
func (h *Handler) ListPanicEvents(c echo.Context) error {
	events, err := h.service.ListPanicEvents(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
