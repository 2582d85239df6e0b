package api

import (
	"context"
	"net/http"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// SafetyClient calls the safety profile, emergency contact and panic endpoints.
type SafetyClient struct {
	t *transport
}

// GetProfile fetches the safety profile of a user.
// GET /api/safety/:id
func (c *SafetyClient) GetProfile(ctx context.Context, userID string, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "get_safety_profile",
		method: http.MethodGet,
		path:   pathJoin(config.SafetyEndpoint, userID),
	}, resolve(ReturnEmpty, opts))
}

// UpdateProfile writes the safety profile of a user.
// PUT /api/safety/:id
func (c *SafetyClient) UpdateProfile(ctx context.Context, userID string, profile domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "update_safety_profile",
		method: http.MethodPut,
		path:   pathJoin(config.SafetyEndpoint, userID),
		body:   profile,
	}, resolve(Raise, opts))
}

// ListContacts lists a user's emergency contacts.
// GET /api/safety/:id/contacts
func (c *SafetyClient) ListContacts(ctx context.Context, userID string, opts ...CallOption) ([]domain.EmergencyContact, error) {
	var out []domain.EmergencyContact
	ok, err := c.t.call(ctx, request{
		op:     "list_contacts",
		method: http.MethodGet,
		path:   pathJoin(config.SafetyEndpoint, userID, "contacts"),
	}, &out, resolve(ReturnEmpty, opts))
	if err != nil {
		return nil, err
	}
	if !ok || out == nil {
		return []domain.EmergencyContact{}, nil
	}
	return out, nil
}

// AddContact adds an emergency contact.
// POST /api/safety/:id/contacts
func (c *SafetyClient) AddContact(ctx context.Context, userID string, contact domain.EmergencyContact, opts ...CallOption) (*domain.EmergencyContact, error) {
	var out domain.EmergencyContact
	if _, err := c.t.call(ctx, request{
		op:     "add_contact",
		method: http.MethodPost,
		path:   pathJoin(config.SafetyEndpoint, userID, "contacts"),
		body:   contact,
	}, &out, resolve(Raise, opts)); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveContact deletes an emergency contact.
// DELETE /api/safety/:id/contacts/:contact_id
func (c *SafetyClient) RemoveContact(ctx context.Context, userID, contactID string, opts ...CallOption) error {
	_, err := c.t.succeeded(ctx, request{
		op:     "remove_contact",
		method: http.MethodDelete,
		path:   pathJoin(config.SafetyEndpoint, userID, "contacts", contactID),
	}, resolve(Raise, opts))
	return err
}

// TriggerPanic raises a panic event for a user.
// POST /api/safety/:id/panic-events
func (c *SafetyClient) TriggerPanic(ctx context.Context, userID string, event domain.PanicEvent, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "trigger_panic",
		method: http.MethodPost,
		path:   pathJoin(config.SafetyEndpoint, userID, "panic-events"),
		body:   event,
	}, resolve(Raise, opts))
}

// ListPanicEvents lists past panic events of a user.
// GET /api/safety/:id/panic-events
func (c *SafetyClient) ListPanicEvents(ctx context.Context, userID string, opts ...CallOption) ([]domain.Payload, error) {
	return c.t.payloads(ctx, request{
		op:     "list_panic_events",
		method: http.MethodGet,
		path:   pathJoin(config.SafetyEndpoint, userID, "panic-events"),
	}, resolve(ReturnEmpty, opts))
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *SafetyClient) Close() {}
