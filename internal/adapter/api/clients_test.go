package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/logging"
	"github.com/hayawalid/smartexplorers/internal/session"
)

func newTestClients(t *testing.T, handler http.HandlerFunc) (*Clients, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.BaseURL = server.URL
	cfg.RequestTimeout = 2 * time.Second
	sess := session.New()
	clients := New(cfg, sess, WithHTTPClient(server.Client()), WithLogger(logging.Discard()))
	t.Cleanup(clients.Close)
	return clients, sess
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestLoginSetsSession(t *testing.T) {
	var gotReq domain.LoginRequest
	clients, sess := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		writeJSON(w, http.StatusOK, `{"user_id":"u1","username":"karim","account_type":"service_provider","access_token":"tok"}`)
	})

	resp, err := clients.Auth.Login(context.Background(), domain.LoginRequest{Username: "karim", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "karim", gotReq.Username)
	assert.Equal(t, domain.AccountTypeServiceProvider, resp.AccountType)
	assert.True(t, sess.IsLoggedIn())
	snap := sess.Snapshot()
	assert.Equal(t, domain.AccountTypeServiceProvider, snap.AccountType)
	assert.Equal(t, "tok", snap.AccessToken)
}

func TestSignupSetsSession(t *testing.T) {
	clients, sess := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/signup", r.URL.Path)
		writeJSON(w, http.StatusCreated, `{"user_id":"u2","username":"amira","account_type":"traveler","access_token":"tok2"}`)
	})

	_, err := clients.Auth.Signup(context.Background(), domain.SignupRequest{
		Email:       "amira@example.com",
		Username:    "amira",
		Password:    "secret123",
		FullName:    "Amira",
		AccountType: domain.AccountTypeTraveler,
	})
	require.NoError(t, err)
	assert.True(t, sess.IsLoggedIn())
	assert.Equal(t, domain.AccountTypeTraveler, sess.Snapshot().AccountType)
}

func TestFailedLoginLeavesSessionEmpty(t *testing.T) {
	clients, sess := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Invalid username or password"}`)
	})

	_, err := clients.Auth.Login(context.Background(), domain.LoginRequest{Username: "x", Password: "y"})
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", err.Error())
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, sess.IsLoggedIn())
}

func TestHardEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusBadRequest, `{"detail":"Username already taken"}`, "Username already taken"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"invalid email"}]}`, "field required; invalid email"},
		{"no detail", http.StatusInternalServerError, `{"error":"boom"}`, "request failed with status 500"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "request failed with status 502"},
		{"null detail", http.StatusNotFound, `{"detail":null}`, "request failed with status 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := clients.Profile.CreateProvider(context.Background(), domain.Payload{"full_name": "Omar"})
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.want, apiErr.Error())
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "create_provider_profile", apiErr.Op)
		})
	}
}

func TestSoftEndpointsReturnEmpty(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"detail":"database down"}`)
	})
	ctx := context.Background()

	stats, err := clients.Admin.Stats(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)

	listings, err := clients.Marketplace.ListListings(ctx, ListingFilter{Category: "tours"})
	require.NoError(t, err)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)

	reports, err := clients.Admin.Reports(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)

	contacts, err := clients.Safety.ListContacts(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestErrorPolicyOverride(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, `{"detail":"maintenance"}`)
	})
	ctx := context.Background()

	_, err := clients.Admin.Stats(ctx, WithErrorPolicy(Raise))
	require.Error(t, err)
	assert.Equal(t, "maintenance", err.Error())

	profile, err := clients.Profile.GetTraveler(ctx, "u1", WithErrorPolicy(ReturnEmpty))
	require.NoError(t, err)
	assert.Empty(t, profile)
}

func TestResolveReport(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/admin/reports/r1/resolve", r.URL.Path)
			writeJSON(w, http.StatusOK, `{"ok":true}`)
		})
		ok, err := clients.Admin.ResolveReport(context.Background(), "r1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"detail":"report not found"}`)
		})
		ok, err := clients.Admin.ResolveReport(context.Background(), "r1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestConversationIDCarriesOver(t *testing.T) {
	var calls int32
	var seen []string
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat/", r.URL.Path)
		var req domain.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req.ConversationID)
		n := atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, fmt.Sprintf(
			`{"message":"reply %d","conversation_id":"conv-1","suggestions":["Pyramids"],"timestamp":"2026-01-02T10:00:00Z"}`, n))
	})

	conv := clients.Chat.NewConversation(map[string]any{"city": "Cairo"})
	assert.Equal(t, "", conv.ID())

	first, err := conv.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", first.ConversationID)

	second, err := conv.Send(context.Background(), "what next?")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	assert.Equal(t, []string{"", "conv-1"}, seen)
	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, "reply 2", msgs[3].Content)
}

func TestChatHistoryDecodes(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat/history/conv-1", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"conversation_id":"conv-1","messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello","timestamp":"2026-01-02T10:00:00Z"}],"created_at":"2026-01-02T09:59:00Z","updated_at":"2026-01-02T10:00:00Z"}`)
	})

	history, err := clients.Chat.History(context.Background(), "conv-1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Nil(t, history.Messages[0].Timestamp)
	require.NotNil(t, history.Messages[1].Timestamp)
	assert.Equal(t, domain.RoleAssistant, history.Messages[1].Role)
}

func TestBearerTokenAttachedByAllClients(t *testing.T) {
	var headers []string
	clients, sess := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		writeJSON(w, http.StatusOK, `{}`)
	})
	sess.SetSession("u1", "amira", domain.AccountTypeTraveler, "tok")
	ctx := context.Background()

	_, _ = clients.Admin.Stats(ctx)
	_, _ = clients.Profile.GetTraveler(ctx, "u1")
	_, _ = clients.Safety.GetProfile(ctx, "u1")
	_, _ = clients.Planner.MyItinerary(ctx, "")

	require.Len(t, headers, 4)
	for _, h := range headers {
		assert.Equal(t, "Bearer tok", h)
	}
}

func TestPlannerRequiresToken(t *testing.T) {
	var calls int32
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := clients.Planner.Chat(context.Background(), domain.PlannerChatRequest{Message: "3 days in Luxor"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = clients.Planner.MyItinerary(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestPlannerUsesSessionUserID(t *testing.T) {
	clients, sess := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/planner/my-itinerary/u9", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"title":"Nile week"}`)
	})
	sess.SetSession("u9", "nour", domain.AccountTypeTraveler, "tok")

	itinerary, err := clients.Planner.MyItinerary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Nile week", itinerary.String("title"))
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	cfg := config.Default()
	cfg.BaseURL = url
	clients := New(cfg, session.New(), WithLogger(logging.Discard()))

	_, err := clients.Social.CreatePost(context.Background(), domain.Payload{"text": "hi"})
	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.True(t, strings.HasPrefix(apiErr.Error(), "could not reach server: "))
	assert.NotNil(t, errors.Unwrap(err))

	posts, err := clients.Social.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCancelledContextPropagates(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := clients.Admin.Stats(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPerCallTimeout(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	_, err := clients.Marketplace.GetListing(context.Background(), "l1", WithTimeout(50*time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueryAndPathEscaping(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/marketplace/listings", r.URL.Path)
		assert.Equal(t, "tours", r.URL.Query().Get("category"))
		assert.Equal(t, "Luxor West", r.URL.Query().Get("location"))
		writeJSON(w, http.StatusOK, `[{"listing_id":"l1"},{"listing_id":"l2"}]`)
	})

	listings, err := clients.Marketplace.ListListings(context.Background(), ListingFilter{Category: "tours", Location: "Luxor West"})
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestEmptyBodySuccess(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/safety/u1/contacts/c1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, clients.Safety.RemoveContact(context.Background(), "u1", "c1"))
}

func TestOfflineLogin(t *testing.T) {
	cfg := config.Default()
	cfg.OfflineMode = true
	cfg.BaseURL = "http://127.0.0.1:1"
	sess := session.New()
	clients := New(cfg, sess, WithLogger(logging.Discard()))

	_, err := clients.Auth.Login(context.Background(), domain.LoginRequest{Username: "provider", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, sess.IsLoggedIn())

	resp, err := clients.Auth.Login(context.Background(), domain.LoginRequest{Username: "provider", Password: "provider123"})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeServiceProvider, resp.AccountType)
	assert.True(t, sess.IsLoggedIn())
}

func TestLogoutClearsSessionEvenWhenServerFails(t *testing.T) {
	clients, sess := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok", body["access_token"])
		writeJSON(w, http.StatusInternalServerError, `{"detail":"oops"}`)
	})
	sess.SetSession("u1", "amira", domain.AccountTypeTraveler, "tok")

	require.NoError(t, clients.Auth.Logout(context.Background()))
	assert.False(t, sess.IsLoggedIn())
}

func TestCheckUsername(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "taken" {
			writeJSON(w, http.StatusOK, `{"available":false}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"available":true}`)
	})

	free, err := clients.Auth.CheckUsername(context.Background(), "fresh")
	require.NoError(t, err)
	assert.True(t, free)

	free, err = clients.Auth.CheckUsername(context.Background(), "taken")
	require.NoError(t, err)
	assert.False(t, free)
}

type idleCounter struct {
	http.RoundTripper
	closed atomic.Int32
}

func (c *idleCounter) CloseIdleConnections() {
	c.closed.Add(1)
}

func TestOnlyBundleCloseReleasesTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	}))
	defer server.Close()

	rt := &idleCounter{RoundTripper: http.DefaultTransport}
	cfg := config.Default()
	cfg.BaseURL = server.URL
	clients := New(cfg, session.New(), WithHTTPClient(&http.Client{Transport: rt}), WithLogger(logging.Discard()))

	clients.Chat.Close()
	clients.Admin.Close()
	assert.Equal(t, int32(0), rt.closed.Load())

	posts, err := clients.Social.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)

	clients.Close()
	assert.Equal(t, int32(1), rt.closed.Load())
}
