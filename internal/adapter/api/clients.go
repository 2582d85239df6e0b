// Package api provides the HTTP clients for the SmartExplorers backend. Each
// resource family has its own client; all of them share one transport.
package api

import (
	"log/slog"
	"net/http"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/session"
)

// Clients bundles the resource clients built on a single HTTP client.
type Clients struct {
	Auth        *AuthClient
	Profile     *ProfileClient
	Social      *SocialClient
	Safety      *SafetyClient
	Marketplace *MarketplaceClient
	Chat        *ChatClient
	Admin       *AdminClient
	Planner     *PlannerClient

	t *transport
}

// New creates the resource clients for cfg. The session store is read for the
// bearer token on every call and written by login, signup and logout.
func New(cfg *config.Config, sess *session.Store, opts ...Option) *Clients {
	t := &transport{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{},
		session:    sess,
		timeout:    cfg.RequestTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return &Clients{
		Auth:        &AuthClient{t: t, offline: cfg.OfflineMode},
		Profile:     &ProfileClient{t: t},
		Social:      &SocialClient{t: t},
		Safety:      &SafetyClient{t: t},
		Marketplace: &MarketplaceClient{t: t},
		Chat:        &ChatClient{t: t, timeout: cfg.ChatTimeout},
		Admin:       &AdminClient{t: t},
		Planner:     &PlannerClient{t: t, timeout: cfg.PlannerTimeout},
		t:           t,
	}
}

// Close releases idle connections of the shared HTTP client. It is the only
// teardown; the per-client Close methods do nothing.
func (c *Clients) Close() {
	c.t.close()
}
