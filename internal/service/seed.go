package service

import (
	"context"
	"fmt"

	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/fixtures"
)

// Seed loads the fixture accounts and, on an empty database, demo content so
// that every screen has something to show.
func (s *Service) Seed(ctx context.Context) error {
	if err := s.SeedUsers(ctx, fixtures.Users); err != nil {
		return err
	}

	n, err := s.store.CountDocuments(ctx, providerDocs.collection)
	if err != nil {
		return fmt.Errorf("failed to count providers: %w", err)
	}
	if n > 0 {
		return nil
	}

	provider, ok := fixtures.Lookup("provider")
	if !ok {
		return nil
	}
	traveler, _ := fixtures.Lookup("traveler")

	if _, err := s.CreateProviderProfile(ctx, domain.Payload{
		"user_id":      provider.UserID,
		"full_name":    provider.FullName,
		"service_type": "guide",
		"bio":          "Licensed Egyptologist guiding in Cairo and Giza.",
		"location":     "Cairo",
		"languages":    []any{"Arabic", "English"},
	}); err != nil {
		return err
	}
	if _, err := s.CreateListing(ctx, domain.Payload{
		"provider_id": provider.UserID,
		"title":       "Pyramids of Giza half-day tour",
		"category":    "tour",
		"location":    "Giza",
		"price":       45,
	}); err != nil {
		return err
	}
	if _, err := s.CreatePost(ctx, domain.Payload{
		"user_id": traveler.UserID,
		"content": "Sunset felucca ride on the Nile was unforgettable.",
	}); err != nil {
		return err
	}
	for _, reason := range []string{"Spam listing", "Inappropriate comment"} {
		if _, err := s.CreateReport(ctx, domain.Payload{
			"reported_by": traveler.UserID,
			"target_id":   provider.UserID,
			"reason":      reason,
		}); err != nil {
			return err
		}
	}

	s.logger.Info("demo data seeded")
	return nil
}
