// Package fixtures holds the dummy accounts used in offline mode and seeded
// into the development backend.
package fixtures

import (
	"strings"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// DummyUser is a fixed development account.
type DummyUser struct {
	UserID      string
	Username    string
	Email       string
	Password    string
	FullName    string
	Phone       string
	AccountType domain.AccountType
}

// Users are the dummy accounts. Passwords are development-only.
var Users = []DummyUser{
	{
		UserID:      "traveler_demo",
		Username:    "traveler",
		Email:       "traveler@smartexplorers.dev",
		Password:    "traveler123",
		FullName:    "Tara Traveler",
		Phone:       "+201000000001",
		AccountType: domain.AccountTypeTraveler,
	},
	{
		UserID:      "provider_demo",
		Username:    "provider",
		Email:       "provider@smartexplorers.dev",
		Password:    "provider123",
		FullName:    "Omar Guide",
		Phone:       "+201000000002",
		AccountType: domain.AccountTypeServiceProvider,
	},
	{
		UserID:      "admin_demo",
		Username:    "admin",
		Email:       "admin@smartexplorers.dev",
		Password:    "admin12345",
		FullName:    "Site Admin",
		AccountType: domain.AccountTypeAdmin,
	},
}

// Lookup finds a dummy user by username or email, case-insensitively.
func Lookup(identifier string) (DummyUser, bool) {
	identifier = strings.TrimSpace(identifier)
	for _, u := range Users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			return u, true
		}
	}
	return DummyUser{}, false
}

// Authenticate returns the dummy user matching identifier and password.
func Authenticate(identifier, password string) (DummyUser, bool) {
	u, ok := Lookup(identifier)
	if !ok || u.Password != password {
		return DummyUser{}, false
	}
	return u, true
}
