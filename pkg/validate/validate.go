// Package validate holds the field-format predicates shared by the
// identity and contact request types.
package validate

import "regexp"

var (
	lettersRe = regexp.MustCompile(`^[A-Za-z]+$`)
	digitsRe  = regexp.MustCompile(`^[0-9]+$`)
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Letters reports whether s is non-empty and contains only ASCII letters.
func Letters(s string) bool { return lettersRe.MatchString(s) }

// Digits reports whether s is non-empty and contains only ASCII digits.
func Digits(s string) bool { return digitsRe.MatchString(s) }

// Email reports whether s has the shape of an email address.
func Email(s string) bool { return emailRe.MatchString(s) }
