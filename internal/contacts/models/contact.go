package models

import (
	"time"

	"phonebook/pkg/domain"
)

// Contact is a directory entry. A nil OwnerID marks the contact as global:
// every user can read it, only admins may change it.
type Contact struct {
	ID          domain.ContactID `json:"id"`
	OwnerID     *domain.UserID   `json:"owner_id,omitempty"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name,omitempty"`
	PhoneNumber string           `json:"phone_number"`
	Address     string           `json:"address,omitempty"`
	Email       string           `json:"email,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IsGlobal reports whether the contact has no owner.
func (c *Contact) IsGlobal() bool { return c.OwnerID == nil }

// VisibleTo reports whether userID may read the contact. A contact is
// visible to its owner and, when global, to everyone.
func (c *Contact) VisibleTo(userID domain.UserID) bool {
	return c.OwnerID == nil || *c.OwnerID == userID
}
