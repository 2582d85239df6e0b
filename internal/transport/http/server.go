// Package http provides the HTTP server of the development backend.
package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/hayawalid/smartexplorers/internal/service"
	"github.com/hayawalid/smartexplorers/internal/transport/http/middleware"
	v1 "github.com/hayawalid/smartexplorers/internal/transport/http/v1"
)

// NewServer creates and configures the backend HTTP server. limiter may be
// nil to disable rate limiting of login and signup.
func NewServer(svc *service.Service, limiter *middleware.LimiterStore, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	v1.NewHandler(svc, limiter, logger).RegisterRoutes(e)

	return e
}
