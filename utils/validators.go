// utils/validators.go
package utils

import (
	"regexp"
	"time"

	"github.com/electoral-demo/voterreg_backend/models"
)

// ValidationResult accumulates business-rule violations for a
// registration form. IsValid is true iff Errors is empty.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

var (
	aadhaarDigits = regexp.MustCompile(`^[0-9]{12}$`)
	mobileDigits  = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidateRegistration applies the business-rule checks to an
// already-sanitized form. Rejected fields arrive as empty strings and
// fail their presence checks. All checks run; errors accumulate in a
// fixed order. The zero dob means date of birth was absent or
// unparseable. Deterministic given the form and now.
func ValidateRegistration(form *models.SubmissionRequest, dob time.Time, now time.Time) ValidationResult {
	errors := []string{}

	if !aadhaarDigits.MatchString(form.Aadhaar) {
		errors = append(errors, "Aadhaar must be exactly 12 digits")
	}

	if !mobileDigits.MatchString(form.Mobile) {
		errors = append(errors, "Mobile number must be exactly 10 digits")
	}

	if _, err := SanitizeEmail(form.Email); err != nil {
		errors = append(errors, "Invalid email format")
	}

	if dob.IsZero() {
		errors = append(errors, "Date of birth is required")
	} else if AgeFromDOB(dob, now) < 18 {
		errors = append(errors, "Age must be 18 or above")
	}

	if len(form.FullName) < 2 {
		errors = append(errors, "Full name is required")
	}

	if len(form.FatherName) < 2 {
		errors = append(errors, "Father name is required")
	}

	switch form.Gender {
	case "Male", "Female", "Other":
	default:
		errors = append(errors, "Gender must be Male, Female or Other")
	}

	return ValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

// AgeFromDOB is the simple calendar-year subtraction used both at
// validation time and by voter search. It is intentionally not
// birthday-aware.
func AgeFromDOB(dob, now time.Time) int {
	return now.Year() - dob.Year()
}
