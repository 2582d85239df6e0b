// Package domain defines the core domain models shared by the client and the backend.
package domain

// AccountType represents the kind of account a user signed up with.
type AccountType string

const (
	AccountTypeTraveler        AccountType = "traveler"
	AccountTypeServiceProvider AccountType = "service_provider"
	AccountTypeAdmin           AccountType = "admin"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeTraveler, AccountTypeServiceProvider, AccountTypeAdmin:
		return true
	}
	return false
}

// Role represents the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// VerificationStatus tracks a provider through identity proofing.
type VerificationStatus string

const (
	VerificationPending    VerificationStatus = "pending"
	VerificationIDCaptured VerificationStatus = "id_captured"
	VerificationVerified   VerificationStatus = "verified"
)

// ProviderRequestStatus represents the review state of a provider application.
type ProviderRequestStatus string

const (
	ProviderRequestPending  ProviderRequestStatus = "pending"
	ProviderRequestApproved ProviderRequestStatus = "approved"
	ProviderRequestRejected ProviderRequestStatus = "rejected"
)

// BookingStatus represents the lifecycle of a marketplace booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Named routes of the application.
const (
	RouteSplash       = "/"
	RouteOnboarding   = "/onboarding"
	RouteHome         = "/home"
	RouteProviderHome = "/provider_home"
	RouteAdmin        = "/admin"
	RouteUserProfile  = "/user_profile"
)

// HomeRoute returns the landing route for an account type.
func HomeRoute(t AccountType) string {
	switch t {
	case AccountTypeServiceProvider:
		return RouteProviderHome
	case AccountTypeAdmin:
		return RouteAdmin
	default:
		return RouteHome
	}
}
