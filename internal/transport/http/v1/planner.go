package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/transport/http/middleware"
)

// PlannerChat answers a planning message.
// POST /api/planner/chat
func (h *Handler) PlannerChat(c echo.Context) error {
	var req domain.PlannerChatRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	resp, err := h.service.PlannerChat(c.Request().Context(), currentUser(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SaveItinerary stores the caller's itinerary.
// POST /api/planner/save
func (h *Handler) SaveItinerary(c echo.Context) error {
	var req struct {
		Itinerary domain.Payload `json:"itinerary"`
	}
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	saved, err := h.service.SaveItinerary(c.Request().Context(), currentUser(c), req.Itinerary)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// MyItinerary returns a saved itinerary. Only its owner or an admin may read it.
// GET /api/planner/my-itinerary/:id
func (h *Handler) MyItinerary(c echo.Context) error {
	userID := c.Param("id")
	claims := middleware.Claims(c)
	if claims == nil || (claims.UserID != userID && claims.AccountType != domain.AccountTypeAdmin) {
		return c.JSON(http.StatusForbidden, domain.DetailError{Detail: "Not allowed to read this itinerary"})
	}
	itinerary, err := h.service.MyItinerary(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, itinerary)
}
