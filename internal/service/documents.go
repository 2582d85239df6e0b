package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hayawalid/smartexplorers/internal/domain"
	store "github.com/hayawalid/smartexplorers/internal/repository"
)

// document describes how one collection is keyed.
type document struct {
	collection string
	idField    string
	ownerField string
	name       string
}

var (
	travelerDocs = document{store.CollectionTravelers, "user_id", "user_id", "Traveler profile"}
	providerDocs = document{store.CollectionProviders, "user_id", "user_id", "Provider profile"}
	requestDocs  = document{store.CollectionProviderRequests, "request_id", "user_id", "Provider request"}
	safetyDocs   = document{store.CollectionSafety, "user_id", "user_id", "Safety profile"}
	contactDocs  = document{store.CollectionContacts, "contact_id", "user_id", "Contact"}
	panicDocs    = document{store.CollectionPanicEvents, "event_id", "user_id", "Panic event"}
	postDocs     = document{store.CollectionPosts, "post_id", "user_id", "Post"}
	reviewDocs   = document{store.CollectionReviews, "review_id", "provider_id", "Review"}
	listingDocs  = document{store.CollectionListings, "listing_id", "provider_id", "Listing"}
	bookingDocs  = document{store.CollectionBookings, "booking_id", "user_id", "Booking"}
	reportDocs   = document{store.CollectionReports, "report_id", "reported_by", "Report"}
	planDocs     = document{store.CollectionItineraries, "user_id", "user_id", "Itinerary"}
)

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// create stores data as a new document. The id field is generated unless the
// collection is keyed by its owner.
func (s *Service) create(ctx context.Context, d document, data domain.Payload) (domain.Payload, error) {
	doc := data.Clone()
	if d.idField == d.ownerField {
		if doc.String(d.idField) == "" {
			return nil, newError(ErrInvalidInput, "%s is required", d.idField)
		}
	} else {
		doc[d.idField] = uuid.NewString()
	}
	now := timestamp(s.now())
	doc["created_at"] = now
	doc["updated_at"] = now

	if err := s.store.PutDocument(ctx, d.collection, doc.String(d.idField), doc.String(d.ownerField), doc); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", d.collection, err)
	}
	return doc, nil
}

func (s *Service) get(ctx context.Context, d document, id string) (domain.Payload, error) {
	doc, err := s.store.GetDocument(ctx, d.collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", d.collection, err)
	}
	if doc == nil {
		return nil, newError(ErrNotFound, "%s not found", d.name)
	}
	return doc, nil
}

// update merges changes into an existing document. Id and owner fields are
// never overwritten.
func (s *Service) update(ctx context.Context, d document, id string, changes domain.Payload) (domain.Payload, error) {
	doc, err := s.get(ctx, d, id)
	if err != nil {
		return nil, err
	}
	for k, v := range changes {
		if k == d.idField || k == d.ownerField || k == "created_at" {
			continue
		}
		doc[k] = v
	}
	doc["updated_at"] = timestamp(s.now())

	if err := s.store.PutDocument(ctx, d.collection, id, doc.String(d.ownerField), doc); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", d.collection, err)
	}
	return doc, nil
}

func (s *Service) list(ctx context.Context, d document, ownerID string, fields map[string]string) ([]domain.Payload, error) {
	docs, err := s.store.ListDocuments(ctx, store.DocumentFilter{Collection: d.collection, OwnerID: ownerID, Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.collection, err)
	}
	return docs, nil
}

func (s *Service) remove(ctx context.Context, d document, id string) error {
	ok, err := s.store.DeleteDocument(ctx, d.collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", d.collection, err)
	}
	if !ok {
		return newError(ErrNotFound, "%s not found", d.name)
	}
	return nil
}

func requireFields(data domain.Payload, fields ...string) error {
	for _, f := range fields {
		v, ok := data[f]
		if !ok || v == nil || v == "" {
			return newError(ErrInvalidInput, "%s is required", f)
		}
	}
	return nil
}
