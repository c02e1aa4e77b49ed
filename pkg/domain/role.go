package domain

import "strings"

// Role is the two-variant caller role. The zero value is RoleMember, so an
// absent or unrecognized role claim degrades to the least privilege.
type Role uint8

const (
	// RoleMember is the default role: sees own and global contacts, writes
	// only own contacts.
	RoleMember Role = iota
	// RoleAdmin may create global contacts and mutate any contact it can see.
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "member"
}

// IsAdmin reports whether the role carries elevated privileges.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// MarshalText renders the role by name so JSON bodies carry "member" or
// "admin" instead of the numeric value.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}

// ParseRole matches a role name case-insensitively. Unknown names map to
// RoleMember rather than an error: a token minted with a role this build
// does not know must not gain privileges, and must not be rejected either.
func ParseRole(s string) Role {
	if strings.EqualFold(s, "admin") {
		return RoleAdmin
	}
	return RoleMember
}

// Identity is the authenticated caller: the subject recovered from a
// verified token plus its role classification.
type Identity struct {
	UserID UserID
	Role   Role
}
