package policy

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/session"
)

func newTestGuard(t *testing.T) (*Guard, *session.Store) {
	t.Helper()
	sess := session.New()
	g, err := NewGuard(context.Background(), sess)
	require.NoError(t, err)
	return g, sess
}

func TestGuardRoutes(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		loggedIn    bool
		route       string
		allowed     bool
		redirect    string
	}{
		{"splash is public", "", false, domain.RouteSplash, true, ""},
		{"onboarding is public", "", false, domain.RouteOnboarding, true, ""},
		{"home needs login", "", false, domain.RouteHome, false, domain.RouteOnboarding},
		{"profile needs login", "", false, domain.RouteUserProfile, false, domain.RouteOnboarding},
		{"traveler home", domain.AccountTypeTraveler, true, domain.RouteHome, true, ""},
		{"traveler profile", domain.AccountTypeTraveler, true, domain.RouteUserProfile, true, ""},
		{"traveler blocked from provider home", domain.AccountTypeTraveler, true, domain.RouteProviderHome, false, domain.RouteHome},
		{"provider home", domain.AccountTypeServiceProvider, true, domain.RouteProviderHome, true, ""},
		{"provider blocked from admin", domain.AccountTypeServiceProvider, true, domain.RouteAdmin, false, domain.RouteProviderHome},
		{"admin dashboard", domain.AccountTypeAdmin, true, domain.RouteAdmin, true, ""},
		{"unknown route", domain.AccountTypeTraveler, true, "/nowhere", false, domain.RouteHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, sess := newTestGuard(t)
			if tt.loggedIn {
				sess.SetSession("u1", "user", tt.accountType, "")
			}

			res, err := g.Check(context.Background(), tt.route)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, res.Allowed)
			assert.Equal(t, tt.redirect, res.Redirect)
		})
	}
}

func TestGuardTreatsExpiredTokenAsLoggedOut(t *testing.T) {
	g, sess := newTestGuard(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	sess.SetSession("u1", "amira", domain.AccountTypeTraveler, token)

	res, err := g.Check(context.Background(), domain.RouteHome)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	res, err = g.Check(context.Background(), domain.RouteHome)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, DecisionLogin, res.Decision)
}

func TestEngineRejectsBadPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package route_policy\n decision = ")
	assert.Error(t, err)
}
