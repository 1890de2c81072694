package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule constants
var (
	// Institution mail domain suffix; only student addresses below it may register
	EmailDomainSuffix = "@mail.jiit.ac.in"

	// Student email pattern - local part followed by the institution domain
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@mail\.jiit\.ac\.in$`

	// Password min length
	PasswordMinLength = 8

	// Review free-text max length
	TextReviewMaxLength = 1000

	// Rating bounds
	RatingMin = 1
	RatingMax = 5

	// Semester bounds
	SemesterMin = 1
	SemesterMax = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsInstitutionEmail reports whether the address belongs to the institution
// student mail domain.
func IsInstitutionEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// IsValidCampus reports whether the value is a user campus ("62" or "128").
// The "both" sentinel is valid only on subjects, never on users.
func IsValidCampus(campus string) bool {
	return campus == "62" || campus == "128"
}

// IsValidSubjectCampus reports whether the value is a subject campus.
func IsValidSubjectCampus(campus string) bool {
	return campus == "both" || IsValidCampus(campus)
}

// IsValidRating reports whether a single rating value is within bounds.
func IsValidRating(r int) bool {
	return r >= RatingMin && r <= RatingMax
}

// IsValidSemester reports whether a semester value is within bounds.
func IsValidSemester(s int) bool {
	return s >= SemesterMin && s <= SemesterMax
}

// ValidatePassword checks the password policy: minimum length, at least one
// letter and at least one digit.
func ValidatePassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}
