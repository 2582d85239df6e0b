// Package store defines the backend storage interface and its SQLite implementation.
package store

import (
	"context"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// Document collections. Profiles, posts, listings and the rest are stored as
// JSON documents keyed by collection and id.
const (
	CollectionTravelers        = "traveler_profiles"
	CollectionProviders        = "provider_profiles"
	CollectionProviderRequests = "provider_requests"
	CollectionSafety           = "safety_profiles"
	CollectionContacts         = "emergency_contacts"
	CollectionPanicEvents      = "panic_events"
	CollectionPosts            = "posts"
	CollectionReviews          = "reviews"
	CollectionListings         = "listings"
	CollectionBookings         = "bookings"
	CollectionReports          = "reports"
	CollectionItineraries      = "itineraries"
)

// Store defines the interface for data persistence.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByLogin(ctx context.Context, identifier string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetUserSuspended(ctx context.Context, userID string, suspended bool) (bool, error)
	CountUsersByType(ctx context.Context) (map[domain.AccountType]int, error)

	// Document operations
	PutDocument(ctx context.Context, collection, docID, ownerID string, data domain.Payload) error
	GetDocument(ctx context.Context, collection, docID string) (domain.Payload, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]domain.Payload, error)
	DeleteDocument(ctx context.Context, collection, docID string) (bool, error)
	CountDocuments(ctx context.Context, collection string) (int, error)

	// Conversation operations
	CreateConversation(ctx context.Context, conversationID, userID string) error
	AppendMessage(ctx context.Context, conversationID string, msg domain.ChatMessage) error
	GetConversation(ctx context.Context, conversationID string) (*domain.ConversationHistory, error)
	ListConversations(ctx context.Context, userID string) ([]domain.ConversationHistory, error)
	DeleteConversation(ctx context.Context, conversationID string) (bool, error)

	// Lifecycle
	Close() error
}

// DocumentFilter selects documents of one collection. Fields are matched
// against top-level string values of the stored document.
type DocumentFilter struct {
	Collection string
	OwnerID    string
	Fields     map[string]string
}
