package models

import (
	"time"

	"phonebook/pkg/domain"
)

// User is the stored account record. Accounts are created by registration
// and never mutated or deleted by this service.
type User struct {
	ID           domain.UserID `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	PasswordHash string        `json:"-"`
	Role         domain.Role   `json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Identity returns the caller identity this account authenticates as.
func (u *User) Identity() domain.Identity {
	return domain.Identity{UserID: u.ID, Role: u.Role}
}
