package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hayawalid/smartexplorers/internal/auth"
	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/logging"
	store "github.com/hayawalid/smartexplorers/internal/repository"
	"github.com/hayawalid/smartexplorers/internal/service"
)

func newTestHandler(t *testing.T) (*Handler, *service.Service) {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := service.New(db, auth.NewTokenManager("test-secret", time.Hour), config.Default(), logging.Discard())
	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return NewHandler(svc, nil, logging.Discard()), svc
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body domain.DetailError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Detail
}

func TestLoginHandler(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"username":"traveler","password":"traveler123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.AccountType != domain.AccountTypeTraveler || resp.AccessToken == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLoginHandlerRejectsBadPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"username":"traveler","password":"nope"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Invalid username or password" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestSignupHandlerValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newContext(http.MethodPost, "/api/auth/signup", `{"email":"x@y.co","username":"xy","password":"password1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Username must be at least 3 characters" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestInvalidBody(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newContext(http.MethodPost, "/api/social/posts", `{not json`)
	if err := h.CreatePost(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetListingNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newContext(http.MethodGet, "/api/marketplace/listings/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.GetListing(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Listing not found" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestResolveReportHandler(t *testing.T) {
	h, svc := newTestHandler(t)

	reports, err := svc.Reports(context.Background())
	if err != nil || len(reports) == 0 {
		t.Fatalf("expected seeded reports: %v %v", reports, err)
	}
	id := reports[0].String("report_id")

	c, rec := newContext(http.MethodPost, "/api/admin/reports/"+id+"/resolve", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.ResolveReport(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newContext(http.MethodPost, "/api/admin/reports/r1/resolve", "")
	c.SetParamNames("id")
	c.SetParamValues("r1")
	if err := h.ResolveReport(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMyItineraryRequiresOwner(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newContext(http.MethodGet, "/api/planner/my-itinerary/traveler_demo", "")
	c.SetParamNames("id")
	c.SetParamValues("traveler_demo")
	c.Set("claims", &auth.Claims{UserID: "provider_demo", AccountType: domain.AccountTypeServiceProvider})
	if err := h.MyItinerary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	c, rec := newContext(http.MethodGet, "/health", "")
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
