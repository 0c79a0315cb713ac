// Package validate holds the syntax checks applied before customer mutations.
// Every predicate is pure and reports invalid input as false, never an error.
package validate

import (
	"regexp"
	"strings"
)

var (
	cnicRe      = regexp.MustCompile(`^[0-9]{13}$`)
	phoneRe     = regexp.MustCompile(`^03[0-9]{9}$`)
	emailRe     = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)
	nameRe      = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	separatorRe = regexp.MustCompile(`^[\s'-]*$`)
)

// IsValidCNIC reports whether s is a 13-digit CNIC, hyphens ignored.
func IsValidCNIC(s string) bool {
	return cnicRe.MatchString(strings.TrimSpace(strings.ReplaceAll(s, "-", "")))
}

// FormatCNIC returns the canonical 5-7-1 hyphenation of a CNIC, or "" when s
// is not a valid CNIC.
func FormatCNIC(s string) string {
	clean := strings.TrimSpace(strings.ReplaceAll(s, "-", ""))
	if !cnicRe.MatchString(clean) {
		return ""
	}
	return clean[:5] + "-" + clean[5:12] + "-" + clean[12:]
}

// IsValidPhone reports whether s is a local mobile number: 11 digits starting
// with 03. Spaces are ignored.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(strings.ReplaceAll(s, " ", "")))
}

// IsValidEmail reports whether s looks like local-part@domain. No TLD check.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsValidName reports whether s is a plausible person name: 2-50 characters
// after trimming, letters/spaces/hyphens/apostrophes only, and not made up of
// separators alone.
func IsValidName(s string) bool {
	name := strings.TrimSpace(s)
	if len(name) < 2 || len(name) > 50 {
		return false
	}
	if !nameRe.MatchString(name) {
		return false
	}
	return !separatorRe.MatchString(name)
}
