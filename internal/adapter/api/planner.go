package api

import (
	"context"
	"net/http"
	"time"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// PlannerClient calls the itinerary planner. Every call needs a logged-in
// session with an access token.
type PlannerClient struct {
	t       *transport
	timeout time.Duration
}

// Chat sends a message to the planner.
// POST /api/planner/chat
func (c *PlannerClient) Chat(ctx context.Context, req domain.PlannerChatRequest, opts ...CallOption) (*domain.PlannerChatResponse, error) {
	var resp domain.PlannerChatResponse
	if _, err := c.t.call(ctx, request{
		op:      "planner_chat",
		method:  http.MethodPost,
		path:    config.PlannerEndpoint + "/chat",
		body:    req,
		auth:    true,
		timeout: c.timeout,
	}, &resp, resolve(Raise, opts)); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Save stores an itinerary for the current user.
// POST /api/planner/save
func (c *PlannerClient) Save(ctx context.Context, itinerary domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:      "planner_save",
		method:  http.MethodPost,
		path:    config.PlannerEndpoint + "/save",
		body:    map[string]any{"itinerary": itinerary},
		auth:    true,
		timeout: c.timeout,
	}, resolve(Raise, opts))
}

// MyItinerary fetches the saved itinerary of userID, or of the current user
// when userID is empty. An empty payload means nothing is saved.
// GET /api/planner/my-itinerary/:user_id
func (c *PlannerClient) MyItinerary(ctx context.Context, userID string, opts ...CallOption) (domain.Payload, error) {
	if userID == "" {
		userID = c.t.session.Snapshot().UserID
	}
	return c.t.payload(ctx, request{
		op:      "planner_my_itinerary",
		method:  http.MethodGet,
		path:    pathJoin(config.PlannerEndpoint+"/my-itinerary", userID),
		auth:    true,
		timeout: c.timeout,
	}, resolve(ReturnEmpty, opts))
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *PlannerClient) Close() {}
