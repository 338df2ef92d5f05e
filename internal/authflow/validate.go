package authflow

import "unicode"

// otpLength is the exact number of digits a reset OTP carries.
const otpLength = 6

// specialChars mirrors the set the signup form advertises.
const specialChars = "!@#$%^&*"

// PasswordCheck is one requirement of the composite strength predicate.
type PasswordCheck struct {
	Name string `json:"name"`
	Met  bool   `json:"met"`
}

// PasswordChecks evaluates the composite strength predicate: at least 8
// characters with upper, lower, digit and special character.
func PasswordChecks(password string) []PasswordCheck {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			for _, s := range specialChars {
				if r == s {
					hasSpecial = true
				}
			}
		}
	}
	return []PasswordCheck{
		{Name: "min_length", Met: len(password) >= 8},
		{Name: "uppercase", Met: hasUpper},
		{Name: "lowercase", Met: hasLower},
		{Name: "digit", Met: hasDigit},
		{Name: "special", Met: hasSpecial},
	}
}

// StrongPassword reports whether every strength requirement holds.
func StrongPassword(password string) bool {
	for _, c := range PasswordChecks(password) {
		if !c.Met {
			return false
		}
	}
	return true
}

// ValidOTP reports whether code is exactly six numeric digits.
func ValidOTP(code string) bool {
	if len(code) != otpLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
