package models

import (
	"strings"
	"time"

	dErrors "phonebook/pkg/domain-errors"
	"phonebook/pkg/validate"
)

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Normalize trims surrounding whitespace from identity fields. The password
// is left untouched.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// Validate checks field formats. Failures name the offending field.
func (r *RegisterRequest) Validate() error {
	if len(r.Username) < 3 {
		return dErrors.New(dErrors.CodeInvalidInput, "username must be at least 3 characters")
	}
	if len(r.Password) < 6 {
		return dErrors.New(dErrors.CodeInvalidInput, "password must be at least 6 characters")
	}
	if !validate.Email(r.Email) {
		return dErrors.New(dErrors.CodeInvalidInput, "email format is invalid")
	}
	if !validate.Letters(r.FirstName) {
		return dErrors.New(dErrors.CodeInvalidInput, "first name must contain only letters")
	}
	if !validate.Letters(r.LastName) {
		return dErrors.New(dErrors.CodeInvalidInput, "last name must contain only letters")
	}
	return nil
}

// LoginRequest carries a credential check.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the issued token plus its expiry for the client.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
