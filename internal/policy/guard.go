package policy

import (
	"context"
	"time"

	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/session"
)

// Result tells the navigator whether to open a route or where to go instead.
type Result struct {
	Allowed  bool
	Redirect string
	Decision string
}

// Guard checks navigation against the session.
type Guard struct {
	engine  *Engine
	session *session.Store
	now     func() time.Time
}

// NewGuard creates a guard using the default route policy.
func NewGuard(ctx context.Context, sess *session.Store) (*Guard, error) {
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		return nil, err
	}
	return &Guard{engine: engine, session: sess, now: time.Now}, nil
}

// Check decides whether route may be opened. An expired access token counts
// as logged out.
func (g *Guard) Check(ctx context.Context, route string) (Result, error) {
	snap := g.session.Snapshot()
	loggedIn := snap.IsLoggedIn() && !g.session.Expired(g.now())

	decision, err := g.engine.Evaluate(ctx, map[string]any{
		"route":        route,
		"logged_in":    loggedIn,
		"account_type": string(snap.AccountType),
	})
	if err != nil {
		return Result{}, err
	}

	switch decision {
	case DecisionAllow:
		return Result{Allowed: true, Decision: decision}, nil
	case DecisionForbidden:
		return Result{Redirect: domain.HomeRoute(snap.AccountType), Decision: decision}, nil
	default:
		return Result{Redirect: domain.RouteOnboarding, Decision: decision}, nil
	}
}
