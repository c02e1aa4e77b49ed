// Package domain defines the typed identifiers shared across features.
//
// UserID and ContactID wrap uuid.UUID as distinct types so the compiler
// rejects cross-assignment between them. Parsing enforces the invariant
// that IDs arriving at trust boundaries are valid, non-empty, non-nil
// UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "phonebook/pkg/domain-errors"
)

// UserID identifies an account.
type UserID uuid.UUID

// ContactID identifies a contact record.
type ContactID uuid.UUID

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id ContactID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the id is the nil UUID.
func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ContactID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// NewUserID returns a fresh random user id.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewContactID returns a fresh random contact id.
func NewContactID() ContactID { return ContactID(uuid.New()) }

// ParseUserID parses and validates a user id from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseContactID parses and validates a contact id from its string form.
func ParseContactID(s string) (ContactID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ContactID{}, err
	}
	return ContactID(u), nil
}

// MarshalText renders the id in canonical UUID form for JSON bodies.
func (id UserID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ContactID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText parses an id with the same validation as ParseUserID.
func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ContactID) UnmarshalText(b []byte) error {
	parsed, err := ParseContactID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}
