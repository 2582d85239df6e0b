package service

import (
	"context"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// GetTravelerProfile returns a traveler's profile.
func (s *Service) GetTravelerProfile(ctx context.Context, userID string) (domain.Payload, error) {
	return s.get(ctx, travelerDocs, userID)
}

// CreateTravelerProfile stores a traveler profile keyed by its user_id.
func (s *Service) CreateTravelerProfile(ctx context.Context, data domain.Payload) (domain.Payload, error) {
	if err := s.requireUser(ctx, data.String("user_id")); err != nil {
		return nil, err
	}
	return s.create(ctx, travelerDocs, data)
}

// UpdateTravelerProfile merges changes into a traveler profile.
func (s *Service) UpdateTravelerProfile(ctx context.Context, userID string, changes domain.Payload) (domain.Payload, error) {
	return s.update(ctx, travelerDocs, userID, changes)
}

// GetProviderProfile returns a provider's profile.
func (s *Service) GetProviderProfile(ctx context.Context, userID string) (domain.Payload, error) {
	return s.get(ctx, providerDocs, userID)
}

// CreateProviderProfile stores a provider profile and files a pending
// provider request for admin review.
func (s *Service) CreateProviderProfile(ctx context.Context, data domain.Payload) (domain.Payload, error) {
	if err := s.requireUser(ctx, data.String("user_id")); err != nil {
		return nil, err
	}
	data = data.Clone()
	if data.String("verification_status") == "" {
		data["verification_status"] = string(domain.VerificationPending)
	}
	data["approved"] = false

	profile, err := s.create(ctx, providerDocs, data)
	if err != nil {
		return nil, err
	}

	if _, err := s.create(ctx, requestDocs, domain.Payload{
		"user_id":      profile.String("user_id"),
		"full_name":    profile["full_name"],
		"service_type": profile["service_type"],
		"status":       string(domain.ProviderRequestPending),
	}); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProviderProfile merges changes into a provider profile.
func (s *Service) UpdateProviderProfile(ctx context.Context, userID string, changes domain.Payload) (domain.Payload, error) {
	return s.update(ctx, providerDocs, userID, changes)
}

// UpdateVerification moves a provider through identity verification.
func (s *Service) UpdateVerification(ctx context.Context, userID string, status domain.VerificationStatus) (domain.Payload, error) {
	switch status {
	case domain.VerificationPending, domain.VerificationIDCaptured, domain.VerificationVerified:
	default:
		return nil, newError(ErrInvalidInput, "Invalid verification status")
	}
	return s.update(ctx, providerDocs, userID, domain.Payload{"verification_status": string(status)})
}

// ListProviders lists provider profiles, optionally by service type.
func (s *Service) ListProviders(ctx context.Context, serviceType string) ([]domain.Payload, error) {
	return s.list(ctx, providerDocs, "", map[string]string{"service_type": serviceType})
}

func (s *Service) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return newError(ErrInvalidInput, "user_id is required")
	}
	_, err := s.Me(ctx, userID)
	return err
}
