package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// AdminClient calls the admin dashboard endpoints. Every call is soft by
// default: dashboards show empty sections rather than failing.
type AdminClient struct {
	t *transport
}

// Stats returns the dashboard counters.
// GET /api/admin/stats
func (c *AdminClient) Stats(ctx context.Context, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "admin_stats",
		method: http.MethodGet,
		path:   config.AdminEndpoint + "/stats",
	}, resolve(ReturnEmpty, opts))
}

// ProviderRequests lists provider applications, optionally by status.
// GET /api/admin/provider-requests?status=
func (c *AdminClient) ProviderRequests(ctx context.Context, status domain.ProviderRequestStatus, opts ...CallOption) ([]domain.Payload, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}
	return c.t.payloads(ctx, request{
		op:     "admin_provider_requests",
		method: http.MethodGet,
		path:   config.AdminEndpoint + "/provider-requests",
		query:  query,
	}, resolve(ReturnEmpty, opts))
}

// ApproveProvider approves a provider application.
// POST /api/admin/provider-requests/:id/approve
func (c *AdminClient) ApproveProvider(ctx context.Context, requestID string, opts ...CallOption) (bool, error) {
	return c.t.succeeded(ctx, request{
		op:     "admin_approve_provider",
		method: http.MethodPost,
		path:   pathJoin(config.AdminEndpoint+"/provider-requests", requestID, "approve"),
	}, resolve(ReturnEmpty, opts))
}

// RejectProvider rejects a provider application with a reason.
// POST /api/admin/provider-requests/:id/reject
func (c *AdminClient) RejectProvider(ctx context.Context, requestID, reason string, opts ...CallOption) (bool, error) {
	return c.t.succeeded(ctx, request{
		op:     "admin_reject_provider",
		method: http.MethodPost,
		path:   pathJoin(config.AdminEndpoint+"/provider-requests", requestID, "reject"),
		body:   map[string]string{"reason": reason},
	}, resolve(ReturnEmpty, opts))
}

// Reports lists open user reports.
// GET /api/admin/reports
func (c *AdminClient) Reports(ctx context.Context, opts ...CallOption) ([]domain.Payload, error) {
	return c.t.payloads(ctx, request{
		op:     "admin_reports",
		method: http.MethodGet,
		path:   config.AdminEndpoint + "/reports",
	}, resolve(ReturnEmpty, opts))
}

// ResolveReport marks a report as resolved and reports whether it succeeded.
// POST /api/admin/reports/:id/resolve
func (c *AdminClient) ResolveReport(ctx context.Context, reportID string, opts ...CallOption) (bool, error) {
	return c.t.succeeded(ctx, request{
		op:     "admin_resolve_report",
		method: http.MethodPost,
		path:   pathJoin(config.AdminEndpoint+"/reports", reportID, "resolve"),
	}, resolve(ReturnEmpty, opts))
}

// Users lists all accounts.
// GET /api/users
func (c *AdminClient) Users(ctx context.Context, opts ...CallOption) ([]domain.Payload, error) {
	return c.t.payloads(ctx, request{
		op:     "list_users",
		method: http.MethodGet,
		path:   config.UsersEndpoint,
	}, resolve(ReturnEmpty, opts))
}

// SuspendUser suspends an account.
// PUT /api/users/:id/suspend
func (c *AdminClient) SuspendUser(ctx context.Context, userID string, opts ...CallOption) (bool, error) {
	return c.t.succeeded(ctx, request{
		op:     "suspend_user",
		method: http.MethodPut,
		path:   pathJoin(config.UsersEndpoint, userID, "suspend"),
	}, resolve(ReturnEmpty, opts))
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *AdminClient) Close() {}
