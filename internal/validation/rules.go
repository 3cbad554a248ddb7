// Package validation implements the storefront's form field rules. Every
// validator returns "" for valid input, otherwise the message of the first
// rule that fails.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/chrisdamba/foodstore/internal/models"
)

// Field names as they appear in forms and request bodies.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldZipCode         = "zipCode"
	FieldPhone           = "phone"
	FieldPaymentMethod   = "paymentMethod"
)

const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

const (
	minNameLength     = 2
	minCityLength     = 2
	minAddressLength  = 5
	minPasswordLength = 6
	minPhoneDigits    = 10
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lettersPattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	// Six digits, optionally followed by a hyphen and four more.
	zipPattern = regexp.MustCompile(`^\d{6}(-\d{4})?$`)
)

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func trimmedLen(value string) int {
	return utf8.RuneCountInString(strings.TrimSpace(value))
}

func ValidateName(value string) string {
	switch {
	case blank(value):
		return "Full name is required"
	case trimmedLen(value) < minNameLength:
		return "Name must be at least 2 characters"
	case !lettersPattern.MatchString(value):
		return "Name can only contain letters and spaces"
	}
	return ""
}

func ValidateEmail(value string) string {
	switch {
	case blank(value):
		return "Email is required"
	case !emailPattern.MatchString(value):
		return "Please enter a valid email address"
	}
	return ""
}

// ValidatePassword is not trimmed: whitespace counts toward the length.
func ValidatePassword(value string) string {
	switch {
	case value == "":
		return "Password is required"
	case utf8.RuneCountInString(value) < minPasswordLength:
		return "Password must be at least 6 characters"
	}
	return ""
}

func ValidateConfirmPassword(value, password string) string {
	switch {
	case value == "":
		return "Please confirm your password"
	case value != password:
		return "Passwords do not match"
	}
	return ""
}

func ValidateAddress(value string) string {
	switch {
	case blank(value):
		return "Street address is required"
	case trimmedLen(value) < minAddressLength:
		return "Please enter a complete address"
	}
	return ""
}

func ValidateCity(value string) string {
	switch {
	case blank(value):
		return "City is required"
	case trimmedLen(value) < minCityLength:
		return "Please enter a valid city name"
	case !lettersPattern.MatchString(value):
		return "City name can only contain letters"
	}
	return ""
}

// ValidateZipCode enforces six digits even though most placeholders show a
// five digit US code.
func ValidateZipCode(value string) string {
	switch {
	case blank(value):
		return "ZIP code is required"
	case !zipPattern.MatchString(value):
		return "Please enter a valid ZIP code (e.g., 123456)"
	}
	return ""
}

// ValidatePhone accepts any formatting as long as ten digits remain.
func ValidatePhone(value string) string {
	if blank(value) {
		return "Phone number is required"
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return "Please enter a valid 10-digit phone number"
	}
	return ""
}

func ValidatePaymentMethod(value string) string {
	switch value {
	case models.PaymentCard, models.PaymentCash:
		return ""
	}
	return "Please choose a payment method"
}

// PasswordStrength is advisory and never blocks a submit. It returns "" for
// an empty password.
func PasswordStrength(password string) string {
	n := utf8.RuneCountInString(password)
	switch {
	case n == 0:
		return ""
	case n < minPasswordLength:
		return StrengthWeak
	case n < 8:
		return StrengthMedium
	}
	var upper, digit bool
	for _, r := range password {
		if r >= 'A' && r <= 'Z' {
			upper = true
		}
		if r >= '0' && r <= '9' {
			digit = true
		}
	}
	if upper && digit {
		return StrengthStrong
	}
	return StrengthMedium
}
