package service

import (
	"context"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// GetSafetyProfile returns a user's safety profile, creating an empty one on
// first access.
func (s *Service) GetSafetyProfile(ctx context.Context, userID string) (domain.Payload, error) {
	doc, err := s.store.GetDocument(ctx, safetyDocs.collection, userID)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.create(ctx, safetyDocs, domain.Payload{"user_id": userID, "share_location": false})
}

// UpdateSafetyProfile merges changes into a safety profile.
func (s *Service) UpdateSafetyProfile(ctx context.Context, userID string, changes domain.Payload) (domain.Payload, error) {
	if _, err := s.GetSafetyProfile(ctx, userID); err != nil {
		return nil, err
	}
	return s.update(ctx, safetyDocs, userID, changes)
}

// ListContacts lists a user's emergency contacts.
func (s *Service) ListContacts(ctx context.Context, userID string) ([]domain.EmergencyContact, error) {
	docs, err := s.list(ctx, contactDocs, userID, nil)
	if err != nil {
		return nil, err
	}
	contacts := make([]domain.EmergencyContact, 0, len(docs))
	for _, d := range docs {
		contacts = append(contacts, domain.EmergencyContact{
			ContactID:    d.String("contact_id"),
			Name:         d.String("name"),
			Phone:        d.String("phone"),
			Relationship: d.String("relationship"),
		})
	}
	return contacts, nil
}

// AddContact adds an emergency contact.
func (s *Service) AddContact(ctx context.Context, userID string, c domain.EmergencyContact) (*domain.EmergencyContact, error) {
	if c.Name == "" || c.Phone == "" {
		return nil, newError(ErrInvalidInput, "name and phone are required")
	}
	doc, err := s.create(ctx, contactDocs, domain.Payload{
		"user_id":      userID,
		"name":         c.Name,
		"phone":        c.Phone,
		"relationship": c.Relationship,
	})
	if err != nil {
		return nil, err
	}
	c.ContactID = doc.String("contact_id")
	return &c, nil
}

// RemoveContact deletes one of the user's contacts.
func (s *Service) RemoveContact(ctx context.Context, userID, contactID string) error {
	doc, err := s.get(ctx, contactDocs, contactID)
	if err != nil {
		return err
	}
	if doc.String("user_id") != userID {
		return newError(ErrNotFound, "Contact not found")
	}
	return s.remove(ctx, contactDocs, contactID)
}

// TriggerPanic records a panic event and reports how many contacts were
// notified.
func (s *Service) TriggerPanic(ctx context.Context, userID string, ev domain.PanicEvent) (domain.Payload, error) {
	contacts, err := s.ListContacts(ctx, userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.create(ctx, panicDocs, domain.Payload{
		"user_id":           userID,
		"latitude":          ev.Latitude,
		"longitude":         ev.Longitude,
		"message":           ev.Message,
		"status":            "active",
		"notified_contacts": len(contacts),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Warn("panic event raised", "user_id", userID, "event_id", doc.String("event_id"), "contacts", len(contacts))
	return doc, nil
}

// ListPanicEvents lists a user's panic events.
func (s *Service) ListPanicEvents(ctx context.Context, userID string) ([]domain.Payload, error) {
	return s.list(ctx, panicDocs, userID, nil)
}
