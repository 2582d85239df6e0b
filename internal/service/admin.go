package service

import (
	"context"
	"fmt"

	"github.com/hayawalid/smartexplorers/internal/domain"
	store "github.com/hayawalid/smartexplorers/internal/repository"
)

const reportResolved = "resolved"

// Stats returns the admin dashboard counters.
func (s *Service) Stats(ctx context.Context) (domain.Payload, error) {
	users, err := s.store.CountUsersByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	total := 0
	for _, n := range users {
		total += n
	}

	pending, err := s.ProviderRequests(ctx, domain.ProviderRequestPending)
	if err != nil {
		return nil, err
	}
	reports, err := s.Reports(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.Payload{
		"total_users":               total,
		"travelers":                 users[domain.AccountTypeTraveler],
		"service_providers":         users[domain.AccountTypeServiceProvider],
		"pending_provider_requests": len(pending),
		"open_reports":              len(reports),
	}
	for key, collection := range map[string]string{
		"listings": store.CollectionListings,
		"bookings": store.CollectionBookings,
		"posts":    store.CollectionPosts,
	} {
		n, err := s.store.CountDocuments(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", collection, err)
		}
		stats[key] = n
	}
	return stats, nil
}

// ProviderRequests lists provider applications, optionally by status.
func (s *Service) ProviderRequests(ctx context.Context, status domain.ProviderRequestStatus) ([]domain.Payload, error) {
	return s.list(ctx, requestDocs, "", map[string]string{"status": string(status)})
}

// ApproveProvider approves a pending application and marks the provider as
// approved.
func (s *Service) ApproveProvider(ctx context.Context, requestID string) (domain.Payload, error) {
	return s.decideProvider(ctx, requestID, domain.ProviderRequestApproved, "")
}

// RejectProvider rejects a pending application.
func (s *Service) RejectProvider(ctx context.Context, requestID, reason string) (domain.Payload, error) {
	return s.decideProvider(ctx, requestID, domain.ProviderRequestRejected, reason)
}

func (s *Service) decideProvider(ctx context.Context, requestID string, status domain.ProviderRequestStatus, reason string) (domain.Payload, error) {
	req, err := s.get(ctx, requestDocs, requestID)
	if err != nil {
		return nil, err
	}
	if req.String("status") != string(domain.ProviderRequestPending) {
		return nil, newError(ErrConflict, "Provider request already %s", req.String("status"))
	}

	changes := domain.Payload{"status": string(status)}
	if reason != "" {
		changes["reason"] = reason
	}
	req, err = s.update(ctx, requestDocs, requestID, changes)
	if err != nil {
		return nil, err
	}

	if _, err := s.update(ctx, providerDocs, req.String("user_id"), domain.Payload{
		"approved": status == domain.ProviderRequestApproved,
	}); err != nil {
		return nil, err
	}
	s.logger.Info("provider request decided", "request_id", requestID, "status", status)
	return req, nil
}

// Reports lists the reports still open.
func (s *Service) Reports(ctx context.Context) ([]domain.Payload, error) {
	all, err := s.list(ctx, reportDocs, "", nil)
	if err != nil {
		return nil, err
	}
	open := make([]domain.Payload, 0, len(all))
	for _, r := range all {
		if r.String("status") != reportResolved {
			open = append(open, r)
		}
	}
	return open, nil
}

// CreateReport files a report about a user or content.
func (s *Service) CreateReport(ctx context.Context, data domain.Payload) (domain.Payload, error) {
	if err := requireFields(data, "reported_by", "reason"); err != nil {
		return nil, err
	}
	data = data.Clone()
	data["status"] = "open"
	return s.create(ctx, reportDocs, data)
}

// ResolveReport closes a report.
func (s *Service) ResolveReport(ctx context.Context, reportID string) (domain.Payload, error) {
	return s.update(ctx, reportDocs, reportID, domain.Payload{"status": reportResolved})
}

// ListUsers lists every account.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

// SuspendUser suspends an account. Suspended users can no longer log in.
func (s *Service) SuspendUser(ctx context.Context, userID string) error {
	ok, err := s.store.SetUserSuspended(ctx, userID, true)
	if err != nil {
		return fmt.Errorf("failed to suspend user: %w", err)
	}
	if !ok {
		return newError(ErrNotFound, "User not found")
	}
	s.logger.Info("user suspended", "user_id", userID)
	return nil
}
