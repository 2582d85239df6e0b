package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// ProfileClient calls the traveler and provider profile endpoints.
type ProfileClient struct {
	t *transport
}

func travelersPath(id ...string) string {
	return pathJoin(config.ProfilesEndpoint+"/travelers", id...)
}

func providersPath(id ...string) string {
	return pathJoin(config.ProfilesEndpoint+"/providers", id...)
}

// GetTraveler fetches a traveler profile.
// GET /api/profiles/travelers/:id
func (c *ProfileClient) GetTraveler(ctx context.Context, userID string, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "get_traveler_profile",
		method: http.MethodGet,
		path:   travelersPath(userID),
	}, resolve(Raise, opts))
}

// CreateTraveler creates a traveler profile.
// POST /api/profiles/travelers
func (c *ProfileClient) CreateTraveler(ctx context.Context, profile domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "create_traveler_profile",
		method: http.MethodPost,
		path:   travelersPath(),
		body:   profile,
	}, resolve(Raise, opts))
}

// UpdateTraveler replaces fields of a traveler profile.
// PUT /api/profiles/travelers/:id
func (c *ProfileClient) UpdateTraveler(ctx context.Context, userID string, profile domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "update_traveler_profile",
		method: http.MethodPut,
		path:   travelersPath(userID),
		body:   profile,
	}, resolve(Raise, opts))
}

// GetProvider fetches a service provider profile.
// GET /api/profiles/providers/:id
func (c *ProfileClient) GetProvider(ctx context.Context, userID string, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "get_provider_profile",
		method: http.MethodGet,
		path:   providersPath(userID),
	}, resolve(Raise, opts))
}

// CreateProvider creates a service provider profile.
// POST /api/profiles/providers
func (c *ProfileClient) CreateProvider(ctx context.Context, profile domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "create_provider_profile",
		method: http.MethodPost,
		path:   providersPath(),
		body:   profile,
	}, resolve(Raise, opts))
}

// UpdateProvider replaces fields of a service provider profile.
// PUT /api/profiles/providers/:id
func (c *ProfileClient) UpdateProvider(ctx context.Context, userID string, profile domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "update_provider_profile",
		method: http.MethodPut,
		path:   providersPath(userID),
		body:   profile,
	}, resolve(Raise, opts))
}

// UpdateVerification records a provider's progress through identity proofing.
// PUT /api/profiles/providers/:id/verification
func (c *ProfileClient) UpdateVerification(ctx context.Context, userID string, status domain.VerificationStatus, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "update_verification",
		method: http.MethodPut,
		path:   providersPath(userID, "verification"),
		body:   map[string]domain.VerificationStatus{"verification_status": status},
	}, resolve(Raise, opts))
}

// ListProviders lists provider profiles, optionally filtered by service type.
// GET /api/profiles/providers?service_type=
func (c *ProfileClient) ListProviders(ctx context.Context, serviceType string, opts ...CallOption) ([]domain.Payload, error) {
	var query url.Values
	if serviceType != "" {
		query = url.Values{"service_type": {serviceType}}
	}
	return c.t.payloads(ctx, request{
		op:     "list_providers",
		method: http.MethodGet,
		path:   providersPath(),
		query:  query,
	}, resolve(ReturnEmpty, opts))
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *ProfileClient) Close() {}
