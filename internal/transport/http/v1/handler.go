// Package v1 provides the HTTP handlers of the development backend.
package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/service"
	"github.com/hayawalid/smartexplorers/internal/transport/http/middleware"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	limiter *middleware.LimiterStore
	logger  *slog.Logger
}

// NewHandler creates a new handler. limiter may be nil to disable rate limiting.
func NewHandler(svc *service.Service, limiter *middleware.LimiterStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: svc, limiter: limiter, logger: logger}
}

// RegisterRoutes registers all API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	requireAuth := middleware.Auth(h.service.Tokens(), true)
	optionalAuth := middleware.Auth(h.service.Tokens(), false)
	adminOnly := middleware.RequireAccountType(domain.AccountTypeAdmin)

	var limited []echo.MiddlewareFunc
	if h.limiter != nil {
		limited = append(limited, middleware.RateLimit(h.limiter))
	}

	a := e.Group(config.AuthEndpoint)
	a.POST("/signup", h.Signup, limited...)
	a.POST("/login", h.Login, limited...)
	a.POST("/logout", h.Logout)
	a.GET("/me", h.Me, requireAuth)
	a.GET("/check-username", h.CheckUsername)

	p := e.Group(config.ProfilesEndpoint)
	p.POST("/travelers", h.CreateTravelerProfile)
	p.GET("/travelers/:id", h.GetTravelerProfile)
	p.PUT("/travelers/:id", h.UpdateTravelerProfile)
	p.GET("/providers", h.ListProviders)
	p.POST("/providers", h.CreateProviderProfile)
	p.GET("/providers/:id", h.GetProviderProfile)
	p.PUT("/providers/:id", h.UpdateProviderProfile)
	p.PUT("/providers/:id/verification", h.UpdateVerification)

	s := e.Group(config.SocialEndpoint)
	s.GET("/posts", h.ListPosts)
	s.POST("/posts", h.CreatePost)
	s.POST("/posts/:id/like", h.LikePost)
	s.DELETE("/posts/:id", h.DeletePost)
	s.GET("/reviews", h.ListReviews)
	s.POST("/reviews", h.CreateReview)
	s.POST("/reports", h.CreateReport)

	sf := e.Group(config.SafetyEndpoint)
	sf.GET("/:id", h.GetSafetyProfile)
	sf.PUT("/:id", h.UpdateSafetyProfile)
	sf.GET("/:id/contacts", h.ListContacts)
	sf.POST("/:id/contacts", h.AddContact)
	sf.DELETE("/:id/contacts/:contact_id", h.RemoveContact)
	sf.GET("/:id/panic-events", h.ListPanicEvents)
	sf.POST("/:id/panic-events", h.TriggerPanic)

	m := e.Group(config.MarketplaceEndpoint)
	m.GET("/listings", h.ListListings)
	m.POST("/listings", h.CreateListing)
	m.GET("/listings/:id", h.GetListing)
	m.PUT("/listings/:id", h.UpdateListing)
	m.DELETE("/listings/:id", h.DeleteListing)
	m.GET("/bookings", h.ListBookings)
	m.POST("/bookings", h.CreateBooking)
	m.PUT("/bookings/:id", h.UpdateBookingStatus)

	ch := e.Group(config.ChatEndpoint, optionalAuth)
	ch.POST("", h.Chat)
	ch.POST("/", h.Chat)
	ch.GET("/history/:id", h.ChatHistory)
	ch.DELETE("/history/:id", h.DeleteConversation)
	ch.GET("/conversations", h.Conversations)

	pl := e.Group(config.PlannerEndpoint, requireAuth)
	pl.POST("/chat", h.PlannerChat)
	pl.POST("/save", h.SaveItinerary)
	pl.GET("/my-itinerary/:id", h.MyItinerary)

	ad := e.Group(config.AdminEndpoint, requireAuth, adminOnly)
	ad.GET("/stats", h.Stats)
	ad.GET("/provider-requests", h.ProviderRequests)
	ad.POST("/provider-requests/:id/approve", h.ApproveProvider)
	ad.POST("/provider-requests/:id/reject", h.RejectProvider)
	ad.GET("/reports", h.Reports)
	ad.POST("/reports/:id/resolve", h.ResolveReport)

	u := e.Group(config.UsersEndpoint, requireAuth, adminOnly)
	u.GET("", h.ListUsers)
	u.PUT("/:id/suspend", h.SuspendUser)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// fail writes err as a {"detail"} body with the matching status code.
func (h *Handler) fail(c echo.Context, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		return c.JSON(statusFor(se.Kind), domain.DetailError{Detail: se.Detail})
	}
	h.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, domain.DetailError{Detail: "Internal server error"})
}

func statusFor(kind error) int {
	switch kind {
	case service.ErrInvalidInput:
		return http.StatusBadRequest
	case service.ErrUnauthorized:
		return http.StatusUnauthorized
	case service.ErrForbidden:
		return http.StatusForbidden
	case service.ErrNotFound:
		return http.StatusNotFound
	case service.ErrConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// bindBody decodes the JSON body only; path and query parameters are read
// explicitly by each handler.
func bindBody(c echo.Context, v any) error {
	return (&echo.DefaultBinder{}).BindBody(c, v)
}

func badRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, domain.DetailError{Detail: detail})
}

// currentUser returns the authenticated user id, or "".
func currentUser(c echo.Context) string {
	if claims := middleware.Claims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
