package utils

import (
	"regexp"        // Regular expressions
	"strings"       // String manipulation
	"unicode/utf8"  // Rune-aware length checks
)

// emailRegex is a pragmatic format check, not a full RFC 5322 parser
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail checks the email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(NormalizeEmail(email))
}

// IsValidPassword checks the minimum password length (8)
func IsValidPassword(password string) bool {
	return len(password) >= 8
}

// IsValidName checks that a name is between 2 and 50 runes
func IsValidName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 2 && n <= 50
}
