// Package middleware provides echo middleware for the development backend.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/auth"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

const claimsKey = "claims"

// Auth verifies the bearer token. When required is false a missing or
// invalid token lets the request through anonymously.
func Auth(tokens *auth.TokenManager, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				if required {
					return c.JSON(http.StatusUnauthorized, domain.DetailError{Detail: "Not authenticated"})
				}
				return next(c)
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				if required {
					return c.JSON(http.StatusUnauthorized, domain.DetailError{Detail: "Could not validate credentials"})
				}
				return next(c)
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireAccountType rejects requests whose verified claims are missing or
// carry an account type outside types. It must run after Auth.
func RequireAccountType(types ...domain.AccountType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, domain.DetailError{Detail: "Not authenticated"})
			}
			for _, t := range types {
				if claims.AccountType == t {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, domain.DetailError{Detail: "Not enough permissions"})
		}
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Claims returns the verified claims of the request, or nil.
func Claims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}
