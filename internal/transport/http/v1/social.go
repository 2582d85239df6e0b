package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// ListPosts lists posts.
// GET /api/social/posts
func (h *Handler) ListPosts(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost publishes a post.
// POST /api/social/posts
func (h *Handler) CreatePost(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	post, err := h.service.CreatePost(c.Request().Context(), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// LikePost likes a post on behalf of user_id.
// POST /api/social/posts/:id/like
func (h *Handler) LikePost(c echo.Context) error {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	post, err := h.service.LikePost(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post.
// DELETE /api/social/posts/:id
func (h *Handler) DeletePost(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReviews lists reviews.
// GET /api/social/reviews?provider_id=
func (h *Handler) ListReviews(c echo.Context) error {
	reviews, err := h.service.ListReviews(c.Request().Context(), c.QueryParam("provider_id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// CreateReview stores a review.
// POST /api/social/reviews
func (h *Handler) CreateReview(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	review, err := h.service.CreateReview(c.Request().Context(), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// CreateReport files a report for admin review.
// POST /api/social/reports
func (h *Handler) CreateReport(c echo.Context) error {
	var body domain.Payload
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	report, err := h.service.CreateReport(c.Request().Context(), body)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, report)
}
