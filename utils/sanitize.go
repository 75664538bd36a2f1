// utils/sanitize.go
package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
)

// The sanitizers are the only point where untrusted free text becomes
// safe to persist or display. Each one is total: it returns either the
// canonical form or an error, never panics.

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
	nameCharRegex = regexp.MustCompile(`[^a-zA-Z\s\-'\.]`)
)

// SanitizeEmail lowercases, trims and validates an email address.
func SanitizeEmail(email string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(cleaned) {
		return "", errors.New("invalid email format")
	}
	return cleaned, nil
}

// SanitizeMobile strips non-digits and requires exactly 10 digits.
func SanitizeMobile(mobile string) (string, error) {
	cleaned := nonDigitRegex.ReplaceAllString(mobile, "")
	if len(cleaned) != 10 {
		return "", errors.New("invalid mobile number")
	}
	return cleaned, nil
}

// SanitizeAadhaar strips non-digits and requires exactly 12 digits.
func SanitizeAadhaar(aadhaar string) (string, error) {
	cleaned := nonDigitRegex.ReplaceAllString(aadhaar, "")
	if len(cleaned) != 12 {
		return "", errors.New("invalid aadhaar number")
	}
	return cleaned, nil
}

// SanitizeText trims, escapes markup-significant characters and
// truncates to maxLength characters. Only empty input is rejected.
func SanitizeText(text string, maxLength int) (string, error) {
	cleaned := html.EscapeString(strings.TrimSpace(text))
	if cleaned == "" {
		return "", errors.New("empty text")
	}
	if runes := []rune(cleaned); len(runes) > maxLength {
		cleaned = string(runes[:maxLength])
	}
	return cleaned, nil
}

// SanitizeGender normalizes case and accepts only Male, Female or
// Other; anything else is rejected.
func SanitizeGender(gender string) (string, error) {
	cleaned := strings.TrimSpace(gender)
	for _, allowed := range []string{"Male", "Female", "Other"} {
		if strings.EqualFold(cleaned, allowed) {
			return allowed, nil
		}
	}
	return "", errors.New("invalid gender")
}

// SanitizeName strips characters outside letters, space, hyphen,
// apostrophe and period, then requires at least 2 characters.
func SanitizeName(name string) (string, error) {
	cleaned := nameCharRegex.ReplaceAllString(strings.TrimSpace(name), "")
	if len(cleaned) < 2 {
		return "", errors.New("invalid name")
	}
	return cleaned, nil
}
