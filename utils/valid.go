// utils/valid.go
package utils

import (
	"regexp"
	"strings"
)

// emailRegex accepts the basic local@domain.tld shape. Kept deliberately
// loose to match what the submission form always accepted.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsBlank reports whether s is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidEmail reports whether email matches the basic email shape.
// Leading/trailing whitespace is ignored; case is preserved elsewhere,
// lookups stay case-sensitive.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}
