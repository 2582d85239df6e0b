package domain

import "time"

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	FullName    string      `json:"full_name"`
	Phone       string      `json:"phone,omitempty"`
	AccountType AccountType `json:"account_type"`
}

// LoginRequest is the body of POST /auth/login. Username may also be an email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by a successful login or signup.
type AuthResponse struct {
	UserID      string      `json:"user_id"`
	Username    string      `json:"username"`
	AccountType AccountType `json:"account_type"`
	AccessToken string      `json:"access_token,omitempty"`
	TokenType   string      `json:"token_type,omitempty"`
}

// User is an account as stored by the backend.
type User struct {
	UserID       string      `json:"user_id"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"full_name"`
	Phone        string      `json:"phone,omitempty"`
	AccountType  AccountType `json:"account_type"`
	Suspended    bool        `json:"suspended"`
	CreatedAt    time.Time   `json:"created_at"`
}
