// internal/wizard/schema/rules.go
package schema

import (
	"regexp"
	"strings"
	"time"
)

// Predefined patterns
var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s\-\']{2,100}$`)

	// Emirates ID: 784 prefix, 15 digits total, dashes optional
	emiratesIDRegex = regexp.MustCompile(`^784-?\d{4}-?\d{7}-?\d$`)

	// UAE mobile after stripping spaces and dashes: +971, 00971 or 0 prefix
	// followed by exactly 9 digits
	uaePhoneRegex = regexp.MustCompile(`^(\+971|00971|0)\d{9}$`)

	phoneStripper = regexp.MustCompile(`[\s\-]`)
)

var (
	genderValues        = map[string]bool{"male": true, "female": true, "other": true}
	maritalStatusValues = map[string]bool{"single": true, "married": true, "divorced": true, "widowed": true}
	employmentValues    = map[string]bool{"employed": true, "unemployed": true, "student": true, "retired": true}
	housingValues       = map[string]bool{"rent": true, "own": true, "family": true, "other": true}
)

const minAdultAge = 18

// validEmiratesID checks the 784-XXXX-XXXXXXX-X national ID format.
func validEmiratesID(raw string) bool {
	return emiratesIDRegex.MatchString(strings.TrimSpace(raw))
}

// validUAEPhone strips spaces and dashes before matching.
func validUAEPhone(raw string) bool {
	cleaned := phoneStripper.ReplaceAllString(strings.TrimSpace(raw), "")
	return uaePhoneRegex.MatchString(cleaned)
}

// parseDOB accepts ISO dates with or without a time component.
func parseDOB(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ageAt computes whole years between dob and now. Month and day are compared
// directly so birthdays land on the calendar date regardless of leap years.
func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
