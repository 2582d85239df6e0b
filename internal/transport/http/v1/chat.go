package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// Chat answers an assistant message.
// POST /api/chat/
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	resp, err := h.service.Chat(c.Request().Context(), currentUser(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ChatHistory returns a conversation.
// GET /api/chat/history/:id
func (h *Handler) ChatHistory(c echo.Context) error {
	history, err := h.service.ChatHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, history)
}

// DeleteConversation deletes a conversation.
// DELETE /api/chat/history/:id
func (h *Handler) DeleteConversation(c echo.Context) error {
	if err := h.service.DeleteConversation(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Conversations lists the caller's conversations. Anonymous callers get an
// empty list.
// GET /api/chat/conversations
func (h *Handler) Conversations(c echo.Context) error {
	userID := currentUser(c)
	if userID == "" {
		return c.JSON(http.StatusOK, []domain.ConversationHistory{})
	}
	list, err := h.service.Conversations(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
