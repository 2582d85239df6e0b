package service

import (
	"context"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// ListListings lists listings filtered by category, location and provider.
func (s *Service) ListListings(ctx context.Context, category, location, providerID string) ([]domain.Payload, error) {
	return s.list(ctx, listingDocs, providerID, map[string]string{
		"category": category,
		"location": location,
	})
}

// GetListing returns one listing.
func (s *Service) GetListing(ctx context.Context, listingID string) (domain.Payload, error) {
	return s.get(ctx, listingDocs, listingID)
}

// CreateListing publishes a listing.
func (s *Service) CreateListing(ctx context.Context, data domain.Payload) (domain.Payload, error) {
	if err := requireFields(data, "provider_id", "title"); err != nil {
		return nil, err
	}
	return s.create(ctx, listingDocs, data)
}

// UpdateListing merges changes into a listing.
func (s *Service) UpdateListing(ctx context.Context, listingID string, changes domain.Payload) (domain.Payload, error) {
	return s.update(ctx, listingDocs, listingID, changes)
}

// DeleteListing deletes a listing.
func (s *Service) DeleteListing(ctx context.Context, listingID string) error {
	return s.remove(ctx, listingDocs, listingID)
}

// CreateBooking books an existing listing. New bookings are pending.
func (s *Service) CreateBooking(ctx context.Context, data domain.Payload) (domain.Payload, error) {
	if err := requireFields(data, "listing_id", "user_id"); err != nil {
		return nil, err
	}
	listing, err := s.get(ctx, listingDocs, data.String("listing_id"))
	if err != nil {
		return nil, err
	}
	data = data.Clone()
	data["provider_id"] = listing["provider_id"]
	data["status"] = string(domain.BookingPending)
	return s.create(ctx, bookingDocs, data)
}

// ListBookings lists a user's bookings.
func (s *Service) ListBookings(ctx context.Context, userID string) ([]domain.Payload, error) {
	return s.list(ctx, bookingDocs, userID, nil)
}

// UpdateBookingStatus moves a booking to status.
func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (domain.Payload, error) {
	switch status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
	default:
		return nil, newError(ErrInvalidInput, "Invalid booking status")
	}
	return s.update(ctx, bookingDocs, bookingID, domain.Payload{"status": string(status)})
}
