package api

import (
	"log/slog"
	"net/http"
	"time"
)

// ErrorPolicy decides what a call does when the backend fails.
type ErrorPolicy int

const (
	// Raise returns the failure as an *Error.
	Raise ErrorPolicy = iota
	// ReturnEmpty swallows the failure and returns an empty result.
	// Context cancellation is still returned.
	ReturnEmpty
)

func (p ErrorPolicy) String() string {
	if p == ReturnEmpty {
		return "return_empty"
	}
	return "raise"
}

// CallOption tunes a single call.
type CallOption func(*callOptions)

type callOptions struct {
	policy  ErrorPolicy
	timeout time.Duration
}

// WithErrorPolicy overrides the call's default error policy.
func WithErrorPolicy(p ErrorPolicy) CallOption {
	return func(o *callOptions) {
		o.policy = p
	}
}

// WithTimeout overrides the call's timeout.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		o.timeout = d
	}
}

func resolve(def ErrorPolicy, opts []CallOption) callOptions {
	o := callOptions{policy: def}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures the clients built by New.
type Option func(*transport)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *transport) {
		t.httpClient = c
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(t *transport) {
		t.logger = l
	}
}
