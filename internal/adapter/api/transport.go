package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hayawalid/smartexplorers/internal/session"
)

// transport builds and executes every request so that headers, bearer token
// and timeouts are applied the same way for all resource clients.
type transport struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	timeout    time.Duration
	logger     *slog.Logger
}

type request struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	auth    bool
	timeout time.Duration
	// token overrides the session token, for calls made after the session
	// has been cleared.
	token   string
}

func (t *transport) url(path string, query url.Values) string {
	u := t.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do executes req and decodes a 2xx body into out when out is non-nil.
func (t *transport) do(ctx context.Context, req request, out any) error {
	token := req.token
	if token == "" {
		token = t.session.AccessToken()
	}
	if req.auth && token == "" {
		return ErrNotAuthenticated
	}

	timeout := req.timeout
	if timeout <= 0 {
		timeout = t.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", req.op, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, t.url(req.path, req.query), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.Debug("request failed", "op", req.op, "method", req.method, "path", req.path, "error", err)
		return transportError(req.op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(req.op, err)
	}
	t.logger.Debug("request done",
		"op", req.op,
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(req.op, resp.StatusCode, respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{
			Op:         req.op,
			StatusCode: resp.StatusCode,
			Detail:     "invalid response from server",
			Err:        err,
		}
	}
	return nil
}

// call runs do under an error policy. ok is false when a failure was swallowed
// and the caller should return its empty value.
func (t *transport) call(ctx context.Context, req request, out any, o callOptions) (ok bool, err error) {
	if o.timeout > 0 {
		req.timeout = o.timeout
	}
	err = t.do(ctx, req, out)
	if err == nil {
		return true, nil
	}
	if o.policy == Raise || ctx.Err() != nil || errors.Is(err, ErrNotAuthenticated) {
		return false, err
	}
	t.logger.Warn("request failed, returning empty result", "op", req.op, "error", err)
	return false, nil
}

func (t *transport) close() {
	t.httpClient.CloseIdleConnections()
}

// pathJoin joins escaped segments onto an endpoint prefix.
func pathJoin(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
