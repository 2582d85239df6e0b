package api

import (
	"context"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// payload runs req and returns the decoded object, or an empty one when the
// failure was swallowed.
func (t *transport) payload(ctx context.Context, req request, o callOptions) (domain.Payload, error) {
	var out domain.Payload
	ok, err := t.call(ctx, req, &out, o)
	if err != nil {
		return nil, err
	}
	if !ok || out == nil {
		return domain.Payload{}, nil
	}
	return out, nil
}

// payloads is payload for endpoints returning a JSON array.
func (t *transport) payloads(ctx context.Context, req request, o callOptions) ([]domain.Payload, error) {
	var out []domain.Payload
	ok, err := t.call(ctx, req, &out, o)
	if err != nil {
		return nil, err
	}
	if !ok || out == nil {
		return []domain.Payload{}, nil
	}
	return out, nil
}

// succeeded runs req, ignoring any response body.
func (t *transport) succeeded(ctx context.Context, req request, o callOptions) (bool, error) {
	return t.call(ctx, req, nil, o)
}
