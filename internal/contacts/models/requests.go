package models

import (
	"strings"

	dErrors "phonebook/pkg/domain-errors"
	"phonebook/pkg/validate"
)

// CreateContactRequest carries a new directory entry. IsGlobal is a request,
// not a guarantee: only admins can actually create global contacts.
type CreateContactRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	IsGlobal    bool   `json:"is_global"`
}

// Validate checks field formats. LastName, Address and Email are optional;
// format rules apply only when a value is present.
func (r *CreateContactRequest) Validate() error {
	if !validate.Letters(r.FirstName) {
		return dErrors.New(dErrors.CodeInvalidInput, "first name must contain only letters")
	}
	if r.LastName != "" && !validate.Letters(r.LastName) {
		return dErrors.New(dErrors.CodeInvalidInput, "last name must contain only letters")
	}
	if !validate.Digits(r.PhoneNumber) {
		return dErrors.New(dErrors.CodeInvalidInput, "phone number must contain only digits")
	}
	if r.Email != "" && !validate.Email(r.Email) {
		return dErrors.New(dErrors.CodeInvalidInput, "email format is invalid")
	}
	return nil
}

// UpdateContactRequest is a partial update. Nil fields keep the stored
// value.
type UpdateContactRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Email       *string `json:"email"`
}

// Validate checks the format of every present field.
func (r *UpdateContactRequest) Validate() error {
	if r.FirstName != nil && !validate.Letters(*r.FirstName) {
		return dErrors.New(dErrors.CodeInvalidInput, "first name must contain only letters")
	}
	if r.LastName != nil && *r.LastName != "" && !validate.Letters(*r.LastName) {
		return dErrors.New(dErrors.CodeInvalidInput, "last name must contain only letters")
	}
	if r.PhoneNumber != nil && !validate.Digits(*r.PhoneNumber) {
		return dErrors.New(dErrors.CodeInvalidInput, "phone number must contain only digits")
	}
	if r.Email != nil && *r.Email != "" && !validate.Email(*r.Email) {
		return dErrors.New(dErrors.CodeInvalidInput, "email format is invalid")
	}
	return nil
}

// ApplyTo folds the present fields into c, leaving ID, OwnerID and
// CreatedAt untouched.
func (r *UpdateContactRequest) ApplyTo(c *Contact) {
	if r.FirstName != nil {
		c.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		c.LastName = *r.LastName
	}
	if r.PhoneNumber != nil {
		c.PhoneNumber = *r.PhoneNumber
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
}

// SearchField selects which contact field a search matches against.
type SearchField string

const (
	SearchAll         SearchField = "all"
	SearchFirstName   SearchField = "firstname"
	SearchLastName    SearchField = "lastname"
	SearchPhoneNumber SearchField = "phonenumber"
	SearchEmail       SearchField = "email"
)

// ParseSearchField normalizes a field selector. The empty string means
// search all fields.
func ParseSearchField(s string) (SearchField, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return SearchAll, nil
	case "firstname":
		return SearchFirstName, nil
	case "lastname":
		return SearchLastName, nil
	case "phonenumber":
		return SearchPhoneNumber, nil
	case "email":
		return SearchEmail, nil
	default:
		return "", dErrors.Newf(dErrors.CodeBadRequest, "invalid search field: %s", s)
	}
}
