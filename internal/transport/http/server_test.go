package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayawalid/smartexplorers/internal/adapter/api"
	"github.com/hayawalid/smartexplorers/internal/auth"
	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/dashboard"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/logging"
	"github.com/hayawalid/smartexplorers/internal/policy"
	store "github.com/hayawalid/smartexplorers/internal/repository"
	"github.com/hayawalid/smartexplorers/internal/screen"
	"github.com/hayawalid/smartexplorers/internal/service"
	"github.com/hayawalid/smartexplorers/internal/session"
	"github.com/hayawalid/smartexplorers/internal/transport/http/middleware"
	"github.com/hayawalid/smartexplorers/internal/wizard"
)

// newBackend starts the real backend and returns clients pointed at it.
func newBackend(t *testing.T, limiter *middleware.LimiterStore) (*api.Clients, *session.Store) {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	svc := service.New(db, auth.NewTokenManager("test-secret", time.Hour), cfg, logging.Discard())
	require.NoError(t, svc.Seed(context.Background()))

	server := httptest.NewServer(NewServer(svc, limiter, logging.Discard()))
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	sess := session.New()
	clients := api.New(cfg, sess, api.WithHTTPClient(server.Client()), api.WithLogger(logging.Discard()))
	t.Cleanup(clients.Close)
	return clients, sess
}

func TestLoginAndWhoAmI(t *testing.T) {
	ctx := context.Background()
	clients, sess := newBackend(t, nil)

	_, err := clients.Auth.Me(ctx)
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)

	resp, err := clients.Auth.Login(ctx, domain.LoginRequest{Username: "provider", Password: "provider123"})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeServiceProvider, sess.Snapshot().AccountType)
	assert.Equal(t, resp.AccessToken, sess.AccessToken())

	me, err := clients.Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "provider_demo", me.UserID)

	_, err = clients.Auth.Login(ctx, domain.LoginRequest{Username: "provider", Password: "wrong-pass"})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "Invalid username or password", err.Error())
}

func TestLogoutRevokesServerToken(t *testing.T) {
	ctx := context.Background()
	clients, sess := newBackend(t, nil)

	_, err := clients.Auth.Login(ctx, domain.LoginRequest{Username: "traveler", Password: "traveler123"})
	require.NoError(t, err)
	token := sess.AccessToken()
	require.NoError(t, clients.Auth.Logout(ctx))
	assert.False(t, sess.IsLoggedIn())

	// Reuse the old token directly: the server must reject it.
	sess.SetSession("traveler_demo", "traveler", domain.AccountTypeTraveler, token)
	_, err = clients.Auth.Me(ctx)
	assert.True(t, api.IsStatus(err, 401))
}

func TestChatConversationAgainstBackend(t *testing.T) {
	ctx := context.Background()
	clients, _ := newBackend(t, nil)

	conv := clients.Chat.NewConversation(nil)
	first, err := conv.Send(ctx, "hello")
	require.NoError(t, err)
	second, err := conv.Send(ctx, "I need a guide")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	history, err := clients.Chat.History(ctx, conv.ID())
	require.NoError(t, err)
	assert.Len(t, history.Messages, 4)
	assert.Len(t, conv.Messages(), 4)

	ok, err := clients.Chat.DeleteConversation(ctx, conv.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = clients.Chat.History(ctx, conv.ID())
	assert.True(t, api.IsStatus(err, 404))
}

func TestProviderSignupWizardAgainstBackend(t *testing.T) {
	ctx := context.Background()
	clients, sess := newBackend(t, nil)

	w := wizard.NewProviderSignup(clients.Auth, clients.Profile)
	w.Account.Email = "amira@example.com"
	w.Account.Username = "amira"
	w.Account.Password = "password1"
	w.Account.FullName = "Amira Guide"
	w.Account.Phone = "+201234567"
	require.NoError(t, w.Next())

	w.Service.ServiceType = "guide"
	w.Service.Bio = "Cairo walks"
	w.Service.Location = "Cairo"
	w.Service.Languages = []string{"Arabic"}
	require.NoError(t, w.Next())

	require.NoError(t, w.CaptureID())
	require.NoError(t, w.CompleteSelfie())
	require.NoError(t, w.Next())

	w.Review.AcceptedTerms = true
	route, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteProviderHome, route)
	assert.Equal(t, domain.AccountTypeServiceProvider, sess.Snapshot().AccountType)

	profile, err := clients.Profile.GetProvider(ctx, sess.Snapshot().UserID)
	require.NoError(t, err)
	assert.Equal(t, "guide", profile.String("service_type"))

	requests, err := clients.Admin.ProviderRequests(ctx, domain.ProviderRequestPending)
	require.NoError(t, err)
	assert.Empty(t, requests)
	_, err = clients.Admin.ProviderRequests(ctx, domain.ProviderRequestPending, api.WithErrorPolicy(api.Raise))
	assert.True(t, api.IsStatus(err, 403))

	_, err = clients.Auth.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin12345"})
	require.NoError(t, err)
	requests, err = clients.Admin.ProviderRequests(ctx, domain.ProviderRequestPending)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	ctx := context.Background()
	clients, _ := newBackend(t, nil)

	_, err := clients.Admin.Stats(ctx, api.WithErrorPolicy(api.Raise))
	assert.True(t, api.IsStatus(err, 401))
	ok, err := clients.Admin.SuspendUser(ctx, "traveler_demo")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = clients.Auth.Login(ctx, domain.LoginRequest{Username: "traveler", Password: "traveler123"})
	require.NoError(t, err)
	_, err = clients.Admin.Users(ctx, api.WithErrorPolicy(api.Raise))
	assert.True(t, api.IsStatus(err, 403))

	_, err = clients.Auth.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin12345"})
	require.NoError(t, err)
	users, err := clients.Admin.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestAdminDashboardAgainstBackend(t *testing.T) {
	clients, sess := newBackend(t, nil)
	_, err := clients.Auth.Login(context.Background(), domain.LoginRequest{Username: "admin", Password: "admin12345"})
	require.NoError(t, err)

	guard, err := policy.NewGuard(context.Background(), sess)
	require.NoError(t, err)
	res, err := guard.Check(context.Background(), domain.RouteAdmin)
	require.NoError(t, err)
	require.True(t, res.Allowed)

	scope := screen.New(context.Background())
	defer scope.Dispose()
	board := dashboard.NewAdmin(clients.Admin, scope)
	require.NoError(t, board.Load(scope.Context()))

	st := board.State()
	assert.Equal(t, float64(3), st.Stats["total_users"])
	assert.Len(t, st.ProviderRequests, 1)
	require.Len(t, st.Reports, 2)

	ok, err := board.Resolve(scope.Context(), st.Reports[0].String("report_id"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, board.State().Reports, 1)

	ok, err = clients.Admin.ResolveReport(scope.Context(), "r1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlannerAgainstBackend(t *testing.T) {
	ctx := context.Background()
	clients, _ := newBackend(t, nil)

	_, err := clients.Planner.Chat(ctx, domain.PlannerChatRequest{Message: "3 days"})
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)

	_, err = clients.Auth.Login(ctx, domain.LoginRequest{Username: "traveler", Password: "traveler123"})
	require.NoError(t, err)

	empty, err := clients.Planner.MyItinerary(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	resp, err := clients.Planner.Chat(ctx, domain.PlannerChatRequest{Message: "Plan 3 days please", Preferences: domain.Payload{"destination": "Aswan"}})
	require.NoError(t, err)
	require.NotNil(t, resp.Itinerary)

	_, err = clients.Planner.Save(ctx, resp.Itinerary)
	require.NoError(t, err)
	saved, err := clients.Planner.MyItinerary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Aswan", saved.String("destination"))
}

func TestMarketplaceAndSafetyAgainstBackend(t *testing.T) {
	ctx := context.Background()
	clients, _ := newBackend(t, nil)

	listings, err := clients.Marketplace.ListListings(ctx, api.ListingFilter{Location: "giza"})
	require.NoError(t, err)
	require.Len(t, listings, 1)

	booking, err := clients.Marketplace.CreateBooking(ctx, domain.Payload{"listing_id": listings[0].String("listing_id"), "user_id": "traveler_demo"})
	require.NoError(t, err)
	updated, err := clients.Marketplace.UpdateBookingStatus(ctx, booking.String("booking_id"), domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.String("status"))

	require.NoError(t, clients.Marketplace.DeleteListing(ctx, listings[0].String("listing_id")))
	err = clients.Marketplace.DeleteListing(ctx, listings[0].String("listing_id"))
	assert.Equal(t, "Listing not found", err.Error())

	contact, err := clients.Safety.AddContact(ctx, "traveler_demo", domain.EmergencyContact{Name: "Mum", Phone: "+20100"})
	require.NoError(t, err)
	contacts, err := clients.Safety.ListContacts(ctx, "traveler_demo")
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
	require.NoError(t, clients.Safety.RemoveContact(ctx, "traveler_demo", contact.ContactID))

	available, err := clients.Auth.CheckUsername(ctx, "traveler")
	require.NoError(t, err)
	assert.False(t, available)
	available, err = clients.Auth.CheckUsername(ctx, "newcomer")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestLoginRateLimited(t *testing.T) {
	limiter := middleware.NewLimiterStore(1, 1, time.Minute)
	defer limiter.Stop()
	clients, _ := newBackend(t, limiter)
	ctx := context.Background()

	_, err := clients.Auth.Login(ctx, domain.LoginRequest{Username: "traveler", Password: "traveler123"})
	require.NoError(t, err)
	_, err = clients.Auth.Login(ctx, domain.LoginRequest{Username: "traveler", Password: "traveler123"})
	assert.True(t, api.IsStatus(err, 429))
}
