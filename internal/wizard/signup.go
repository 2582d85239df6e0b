package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hayawalid/smartexplorers/internal/adapter/api"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// ErrVerificationOrder is returned when a verification sub-step is done out of order.
var ErrVerificationOrder = errors.New("verification steps must be completed in order")

// Registrar creates accounts.
type Registrar interface {
	Signup(ctx context.Context, req domain.SignupRequest, opts ...api.CallOption) (*domain.AuthResponse, error)
}

// ProviderProfiles creates provider profiles.
type ProviderProfiles interface {
	CreateProvider(ctx context.Context, profile domain.Payload, opts ...api.CallOption) (domain.Payload, error)
}

// TravelerProfiles creates traveler profiles.
type TravelerProfiles interface {
	CreateTraveler(ctx context.Context, profile domain.Payload, opts ...api.CallOption) (domain.Payload, error)
}

// ValidateAll checks every step, so fields edited after going back are caught.
func (w *Wizard) ValidateAll() error {
	for i, step := range w.steps {
		if err := formValidator().Struct(step.Form()); err != nil {
			return fmt.Errorf("%w: step %d (%s): %v", ErrIncomplete, i+1, step.Name, describe(err))
		}
	}
	return nil
}

func (w *Wizard) readyToSubmit() error {
	if !w.IsFinal() {
		return ErrNotFinal
	}
	return w.ValidateAll()
}

// register signs up once and caches the response in *account. A second call
// with the same username reuses it instead of hitting the conflict.
func register(ctx context.Context, auth Registrar, account **domain.AuthResponse, req domain.SignupRequest) (*domain.AuthResponse, error) {
	if *account != nil && strings.EqualFold((*account).Username, req.Username) {
		return *account, nil
	}
	resp, err := auth.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	*account = resp
	return resp, nil
}

// ProviderSignup is the four-step service provider signup:
// account, service, verification, review.
type ProviderSignup struct {
	*Wizard

	Account      ProviderAccountForm
	Service      ServiceForm
	Verification VerificationForm
	Review       ReviewForm

	auth     Registrar
	profiles ProviderProfiles
	account  *domain.AuthResponse
}

// NewProviderSignup creates the provider flow.
func NewProviderSignup(auth Registrar, profiles ProviderProfiles) *ProviderSignup {
	s := &ProviderSignup{
		Verification: VerificationForm{Status: domain.VerificationPending},
		auth:         auth,
		profiles:     profiles,
	}
	s.Wizard = New(
		Step{Name: "account", Form: func() any { return &s.Account }},
		Step{Name: "service", Form: func() any { return &s.Service }},
		Step{Name: "verification", Form: func() any { return &s.Verification }},
		Step{Name: "review", Form: func() any { return &s.Review }},
	)
	return s
}

// CaptureID records that the ID document was photographed.
func (s *ProviderSignup) CaptureID() error {
	if s.Verification.Status != domain.VerificationPending {
		return ErrVerificationOrder
	}
	s.Verification.Status = domain.VerificationIDCaptured
	return nil
}

// CompleteSelfie records that the selfie matched the captured ID.
func (s *ProviderSignup) CompleteSelfie() error {
	if s.Verification.Status != domain.VerificationIDCaptured {
		return ErrVerificationOrder
	}
	s.Verification.Status = domain.VerificationVerified
	return nil
}

// Submit creates the account and provider profile and returns the route to
// navigate to. Once the account exists, a retried Submit only retries the
// profile.
func (s *ProviderSignup) Submit(ctx context.Context) (string, error) {
	if err := s.readyToSubmit(); err != nil {
		return "", err
	}

	resp, err := register(ctx, s.auth, &s.account, domain.SignupRequest{
		Email:       s.Account.Email,
		Username:    s.Account.Username,
		Password:    s.Account.Password,
		FullName:    s.Account.FullName,
		Phone:       s.Account.Phone,
		AccountType: domain.AccountTypeServiceProvider,
	})
	if err != nil {
		return "", err
	}

	if _, err := s.profiles.CreateProvider(ctx, domain.Payload{
		"user_id":             resp.UserID,
		"full_name":           s.Account.FullName,
		"phone":               s.Account.Phone,
		"service_type":        s.Service.ServiceType,
		"bio":                 s.Service.Bio,
		"location":            s.Service.Location,
		"languages":           s.Service.Languages,
		"verification_status": s.Verification.Status,
	}); err != nil {
		return "", err
	}
	return domain.RouteProviderHome, nil
}

// TravelerSignup is the two-step traveler signup: account, preferences.
type TravelerSignup struct {
	*Wizard

	Account     AccountForm
	Preferences PreferencesForm

	auth     Registrar
	profiles TravelerProfiles
	account  *domain.AuthResponse
}

// NewTravelerSignup creates the traveler flow.
func NewTravelerSignup(auth Registrar, profiles TravelerProfiles) *TravelerSignup {
	s := &TravelerSignup{auth: auth, profiles: profiles}
	s.Wizard = New(
		Step{Name: "account", Form: func() any { return &s.Account }},
		Step{Name: "preferences", Form: func() any { return &s.Preferences }},
	)
	return s
}

// ToggleInterest adds interest if absent, removes it otherwise.
func (s *TravelerSignup) ToggleInterest(interest string) {
	for i, v := range s.Preferences.Interests {
		if v == interest {
			s.Preferences.Interests = append(s.Preferences.Interests[:i], s.Preferences.Interests[i+1:]...)
			return
		}
	}
	s.Preferences.Interests = append(s.Preferences.Interests, interest)
}

// Submit creates the account and traveler profile and returns the route to
// navigate to. Once the account exists, a retried Submit only retries the
// profile.
func (s *TravelerSignup) Submit(ctx context.Context) (string, error) {
	if err := s.readyToSubmit(); err != nil {
		return "", err
	}

	resp, err := register(ctx, s.auth, &s.account, domain.SignupRequest{
		Email:       s.Account.Email,
		Username:    s.Account.Username,
		Password:    s.Account.Password,
		FullName:    s.Account.FullName,
		AccountType: domain.AccountTypeTraveler,
	})
	if err != nil {
		return "", err
	}

	if _, err := s.profiles.CreateTraveler(ctx, domain.Payload{
		"user_id":       resp.UserID,
		"full_name":     s.Account.FullName,
		"interests":     s.Preferences.Interests,
		"date_of_birth": s.Preferences.DateOfBirth.Format("2006-01-02"),
		"gender":        s.Preferences.Gender,
	}); err != nil {
		return "", err
	}
	return domain.RouteHome, nil
}
