package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated is returned before any network I/O when a call needs a
// bearer token and the session has none.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrInvalidCredentials is returned by offline logins that match no dummy user.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Error is returned when the backend answers with a non-2xx status or cannot be
// reached. Error() yields a message suitable for showing to the user.
type Error struct {
	Op         string
	StatusCode int // 0 for transport failures
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an *Error carrying the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func statusError(op string, status int, body []byte) *Error {
	detail := decodeDetail(body)
	if detail == "" {
		detail = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{Op: op, StatusCode: status, Detail: detail}
}

func transportError(op string, err error) *Error {
	return &Error{Op: op, Detail: fmt.Sprintf("could not reach server: %v", err), Err: err}
}

// decodeDetail extracts the detail field of an error body. Validation errors
// arrive as a list of objects with a msg field; their messages are joined.
func decodeDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(payload.Detail, &s) == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(payload.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
