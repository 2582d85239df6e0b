package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// MarketplaceClient calls the listing and booking endpoints.
type MarketplaceClient struct {
	t *transport
}

// ListingFilter narrows ListListings. Empty fields are ignored.
type ListingFilter struct {
	Category   string
	Location   string
	ProviderID string
}

func (f ListingFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.ProviderID != "" {
		q.Set("provider_id", f.ProviderID)
	}
	return q
}

// ListListings lists marketplace listings.
// GET /api/marketplace/listings
func (c *MarketplaceClient) ListListings(ctx context.Context, filter ListingFilter, opts ...CallOption) ([]domain.Payload, error) {
	return c.t.payloads(ctx, request{
		op:     "list_listings",
		method: http.MethodGet,
		path:   config.MarketplaceEndpoint + "/listings",
		query:  filter.query(),
	}, resolve(ReturnEmpty, opts))
}

// GetListing fetches one listing.
// GET /api/marketplace/listings/:id
func (c *MarketplaceClient) GetListing(ctx context.Context, listingID string, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "get_listing",
		method: http.MethodGet,
		path:   pathJoin(config.MarketplaceEndpoint+"/listings", listingID),
	}, resolve(Raise, opts))
}

// CreateListing publishes a listing.
// POST /api/marketplace/listings
func (c *MarketplaceClient) CreateListing(ctx context.Context, listing domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "create_listing",
		method: http.MethodPost,
		path:   config.MarketplaceEndpoint + "/listings",
		body:   listing,
	}, resolve(Raise, opts))
}

// UpdateListing replaces fields of a listing.
// PUT /api/marketplace/listings/:id
func (c *MarketplaceClient) UpdateListing(ctx context.Context, listingID string, listing domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "update_listing",
		method: http.MethodPut,
		path:   pathJoin(config.MarketplaceEndpoint+"/listings", listingID),
		body:   listing,
	}, resolve(Raise, opts))
}

// DeleteListing removes a listing.
// DELETE /api/marketplace/listings/:id
func (c *MarketplaceClient) DeleteListing(ctx context.Context, listingID string, opts ...CallOption) error {
	_, err := c.t.succeeded(ctx, request{
		op:     "delete_listing",
		method: http.MethodDelete,
		path:   pathJoin(config.MarketplaceEndpoint+"/listings", listingID),
	}, resolve(Raise, opts))
	return err
}

// CreateBooking books a listing.
// POST /api/marketplace/bookings
func (c *MarketplaceClient) CreateBooking(ctx context.Context, booking domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "create_booking",
		method: http.MethodPost,
		path:   config.MarketplaceEndpoint + "/bookings",
		body:   booking,
	}, resolve(Raise, opts))
}

// ListBookings lists the bookings of a user.
// GET /api/marketplace/bookings?user_id=
func (c *MarketplaceClient) ListBookings(ctx context.Context, userID string, opts ...CallOption) ([]domain.Payload, error) {
	return c.t.payloads(ctx, request{
		op:     "list_bookings",
		method: http.MethodGet,
		path:   config.MarketplaceEndpoint + "/bookings",
		query:  url.Values{"user_id": {userID}},
	}, resolve(ReturnEmpty, opts))
}

// UpdateBookingStatus moves a booking to a new status.
// PUT /api/marketplace/bookings/:id
func (c *MarketplaceClient) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "update_booking",
		method: http.MethodPut,
		path:   pathJoin(config.MarketplaceEndpoint+"/bookings", bookingID),
		body:   map[string]domain.BookingStatus{"status": status},
	}, resolve(Raise, opts))
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *MarketplaceClient) Close() {}
