package wizard

import (
	"time"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// AccountForm holds the credentials entered on the first step of both flows.
type AccountForm struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=30"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

// ProviderAccountForm adds the phone number providers must give.
type ProviderAccountForm struct {
	AccountForm
	Phone string `json:"phone" validate:"required"`
}

// ServiceForm describes what a provider offers.
type ServiceForm struct {
	ServiceType string   `json:"service_type" validate:"required,oneof=guide driver host photographer translator"`
	Bio         string   `json:"bio" validate:"required,max=500"`
	Location    string   `json:"location" validate:"required"`
	Languages   []string `json:"languages" validate:"min=1,dive,required"`
}

// VerificationForm tracks identity proofing: ID capture, then selfie match.
type VerificationForm struct {
	Status domain.VerificationStatus `json:"verification_status" validate:"eq=verified"`
}

// ReviewForm is the final confirmation step.
type ReviewForm struct {
	AcceptedTerms bool `json:"accepted_terms" validate:"required"`
}

// PreferencesForm holds a traveler's interests and personal details.
type PreferencesForm struct {
	Interests   []string  `json:"interests" validate:"min=3,dive,required"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"past"`
	Gender      string    `json:"gender" validate:"required,oneof=male female other prefer_not_to_say"`
}
