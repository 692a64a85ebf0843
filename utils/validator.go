// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var cnicDigits = regexp.MustCompile(`[^0-9]`)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// NormalizeCNIC strips dashes and spaces from a CNIC so lookups compare
// digits only. Returns "" when fewer than 13 digits remain.
func NormalizeCNIC(cnic string) string {
	digits := cnicDigits.ReplaceAllString(cnic, "")
	if len(digits) != 13 {
		return ""
	}
	return digits
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
