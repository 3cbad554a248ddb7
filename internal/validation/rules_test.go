package validation

import "testing"

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) string
		input string
		want  string
	}{
		{"email empty", ValidateEmail, "  ", "Email is required"},
		{"email no at", ValidateEmail, "not-an-email", "Please enter a valid email address"},
		{"email no tld", ValidateEmail, "a@b", "Please enter a valid email address"},
		{"email space", ValidateEmail, "a b@c.co", "Please enter a valid email address"},
		{"email ok", ValidateEmail, "a@b.co", ""},

		{"phone empty", ValidatePhone, "", "Phone number is required"},
		{"phone short", ValidatePhone, "555-1234", "Please enter a valid 10-digit phone number"},
		{"phone formatted", ValidatePhone, "(555) 123-4567", ""},
		{"phone long", ValidatePhone, "+44 20 7946 0958", ""},

		{"zip empty", ValidateZipCode, "", "ZIP code is required"},
		{"zip five digits", ValidateZipCode, "12345", "Please enter a valid ZIP code (e.g., 123456)"},
		{"zip six digits", ValidateZipCode, "123456", ""},
		{"zip extended", ValidateZipCode, "123456-7890", ""},
		{"zip bad extension", ValidateZipCode, "123456-789", "Please enter a valid ZIP code (e.g., 123456)"},

		{"city empty", ValidateCity, " ", "City is required"},
		{"city short", ValidateCity, "A", "Please enter a valid city name"},
		{"city digits", ValidateCity, "Area 51", "City name can only contain letters"},
		{"city ok", ValidateCity, "New York", ""},

		{"name empty", ValidateName, "", "Full name is required"},
		{"name short", ValidateName, " J ", "Name must be at least 2 characters"},
		{"name symbols", ValidateName, "J. Doe", "Name can only contain letters and spaces"},
		{"name ok", ValidateName, "Jane Doe", ""},

		{"address empty", ValidateAddress, "", "Street address is required"},
		{"address short", ValidateAddress, " 1 A ", "Please enter a complete address"},
		{"address ok", ValidateAddress, "1 Main St", ""},

		{"password empty", ValidatePassword, "", "Password is required"},
		{"password short", ValidatePassword, "abc12", "Password must be at least 6 characters"},
		{"password ok", ValidatePassword, "abc123", ""},

		{"payment unknown", ValidatePaymentMethod, "crypto", "Please choose a payment method"},
		{"payment cash", ValidatePaymentMethod, "cash", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateConfirmPassword(t *testing.T) {
	if got := ValidateConfirmPassword("", "secret1"); got != "Please confirm your password" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := ValidateConfirmPassword("secret2", "secret1"); got != "Passwords do not match" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := ValidateConfirmPassword("secret1", "secret1"); got != "" {
		t.Fatalf("expected valid, got %q", got)
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"abc":       StrengthWeak,
		"abcdef":    StrengthMedium,
		"abcdefg":   StrengthMedium,
		"abcdefgh":  StrengthMedium,
		"Abcdefgh":  StrengthMedium,
		"abcdefg1":  StrengthMedium,
		"Abcdefg1":  StrengthStrong,
		"PASSWORD9": StrengthStrong,
	}
	for input, want := range tests {
		if got := PasswordStrength(input); got != want {
			t.Fatalf("PasswordStrength(%q): expected %q, got %q", input, want, got)
		}
	}
}
