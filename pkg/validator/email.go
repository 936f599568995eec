package validator

import "regexp"

// emailPattern is anchored at the start only. Trailing text after a match is accepted.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// IsEmail reports whether s is a syntactically plausible email address.
// Known weak: many malformed addresses pass.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
