// internal/wizard/schema/schema.go

// Package schema validates application drafts section by section. Validation
// is pure: it never mutates the draft and never panics on missing data.
package schema

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"social-support-portal/internal/models"
)

// Section identifiers, in wizard order.
const (
	SectionPersonal  = "personal"
	SectionFamily    = "family"
	SectionSituation = "situation"
	SectionDocuments = "documents"
)

// Sections lists the wizard steps in order.
var Sections = []string{SectionPersonal, SectionFamily, SectionSituation, SectionDocuments}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  []ValidationError `json:"errors"`
}

func newResult(errs []ValidationError) *ValidationResult {
	if errs == nil {
		errs = []ValidationError{}
	}
	return &ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateSection runs the rules for a single wizard step. Unknown section
// names validate as a missing-required error rather than panicking.
func ValidateSection(section string, draft *models.ApplicationDraft) *ValidationResult {
	switch section {
	case SectionPersonal:
		return newResult(validatePersonal(&draft.Personal))
	case SectionFamily:
		return newResult(validateFamily(&draft.Family))
	case SectionSituation:
		return newResult(validateSituation(&draft.Situation))
	case SectionDocuments:
		return newResult(validateDocuments(&draft.Documents))
	default:
		return newResult([]ValidationError{{
			Field:   "section",
			Code:    "INVALID_VALUE",
			Message: fmt.Sprintf("Unknown section: %s", section),
		}})
	}
}

// ValidateAll runs every section in order and concatenates errors.
func ValidateAll(draft *models.ApplicationDraft) *ValidationResult {
	var errs []ValidationError
	for _, section := range Sections {
		errs = append(errs, ValidateSection(section, draft).Errors...)
	}
	return newResult(errs)
}

func validatePersonal(p *models.PersonalSection) []ValidationError {
	errs := []ValidationError{}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		errs = append(errs, ValidationError{
			Field:   "personal.name",
			Code:    "MISSING_REQUIRED",
			Message: "Name is required",
		})
	} else if !nameRegex.MatchString(name) {
		errs = append(errs, ValidationError{
			Field:   "personal.name",
			Code:    "INVALID_FORMAT",
			Message: "Name must be 2-100 characters, letters, spaces, hyphens, or apostrophes",
		})
	}

	if strings.TrimSpace(p.NationalID) == "" {
		errs = append(errs, ValidationError{
			Field:   "personal.nationalId",
			Code:    "MISSING_REQUIRED",
			Message: "Emirates ID is required",
		})
	} else if !validEmiratesID(p.NationalID) {
		errs = append(errs, ValidationError{
			Field:   "personal.nationalId",
			Code:    "INVALID_FORMAT",
			Message: "Emirates ID must match 784-XXXX-XXXXXXX-X",
		})
	}

	if strings.TrimSpace(p.DOB) == "" {
		errs = append(errs, ValidationError{
			Field:   "personal.dob",
			Code:    "MISSING_REQUIRED",
			Message: "Date of birth is required",
		})
	} else if dob, ok := parseDOB(p.DOB); !ok {
		errs = append(errs, ValidationError{
			Field:   "personal.dob",
			Code:    "INVALID_FORMAT",
			Message: "Date of birth must be a valid date (YYYY-MM-DD)",
		})
	} else if ageAt(dob, time.Now()) < minAdultAge {
		errs = append(errs, ValidationError{
			Field:   "personal.dob",
			Code:    "INVALID_VALUE",
			Message: "Applicant must be at least 18 years old",
		})
	}

	if !genderValues[p.Gender] {
		errs = append(errs, ValidationError{
			Field:   "personal.gender",
			Code:    "INVALID_VALUE",
			Message: "Gender must be one of: male, female, other",
		})
	}

	for _, f := range []struct {
		value, field, label string
	}{
		{p.Address, "personal.address", "Address"},
		{p.City, "personal.city", "City"},
		{p.State, "personal.state", "State"},
		{p.Country, "personal.country", "Country"},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, ValidationError{
				Field:   f.field,
				Code:    "MISSING_REQUIRED",
				Message: f.label + " is required",
			})
		}
	}

	if strings.TrimSpace(p.Phone) == "" {
		errs = append(errs, ValidationError{
			Field:   "personal.phone",
			Code:    "MISSING_REQUIRED",
			Message: "Phone is required",
		})
	} else if !validUAEPhone(p.Phone) {
		errs = append(errs, ValidationError{
			Field:   "personal.phone",
			Code:    "INVALID_FORMAT",
			Message: "Phone must be a valid UAE mobile number",
		})
	}

	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, ValidationError{
			Field:   "personal.email",
			Code:    "MISSING_REQUIRED",
			Message: "Email is required",
		})
	} else if !emailRegex.MatchString(strings.TrimSpace(p.Email)) {
		errs = append(errs, ValidationError{
			Field:   "personal.email",
			Code:    "INVALID_FORMAT",
			Message: "Invalid email format",
		})
	}

	return errs
}

func validateFamily(f *models.FamilySection) []ValidationError {
	errs := []ValidationError{}

	if !maritalStatusValues[f.MaritalStatus] {
		errs = append(errs, ValidationError{
			Field:   "family.maritalStatus",
			Code:    "INVALID_VALUE",
			Message: "Marital status must be one of: single, married, divorced, widowed",
		})
	}

	// Spouse name only matters when married.
	if f.MaritalStatus == "married" && strings.TrimSpace(f.SpouseName) == "" {
		errs = append(errs, ValidationError{
			Field:   "family.spouseName",
			Code:    "MISSING_REQUIRED",
			Message: "Spouse name is required when married",
		})
	}

	if !f.Dependents.Set {
		errs = append(errs, ValidationError{
			Field:   "family.dependents",
			Code:    "MISSING_REQUIRED",
			Message: "Number of dependents is required",
		})
	} else if f.Dependents.Value < 0 {
		errs = append(errs, ValidationError{
			Field:   "family.dependents",
			Code:    "INVALID_VALUE",
			Message: "Dependents must be a non-negative number",
		})
	}

	if !f.HouseholdMembers.Set {
		errs = append(errs, ValidationError{
			Field:   "family.householdMembers",
			Code:    "MISSING_REQUIRED",
			Message: "Household size is required",
		})
	} else if f.HouseholdMembers.Value < 1 {
		errs = append(errs, ValidationError{
			Field:   "family.householdMembers",
			Code:    "INVALID_VALUE",
			Message: "Household must include at least one member",
		})
	}

	if !employmentValues[f.EmploymentStatus] {
		errs = append(errs, ValidationError{
			Field:   "family.employmentStatus",
			Code:    "INVALID_VALUE",
			Message: "Employment status must be one of: employed, unemployed, student, retired",
		})
	}

	if !f.MonthlyIncome.Set {
		errs = append(errs, ValidationError{
			Field:   "family.monthlyIncome",
			Code:    "MISSING_REQUIRED",
			Message: "Monthly income is required",
		})
	} else if f.MonthlyIncome.Value < 0 {
		errs = append(errs, ValidationError{
			Field:   "family.monthlyIncome",
			Code:    "INVALID_VALUE",
			Message: "Monthly income must be a non-negative number",
		})
	}

	if f.OtherIncome.Set && f.OtherIncome.Value < 0 {
		errs = append(errs, ValidationError{
			Field:   "family.otherIncome",
			Code:    "INVALID_VALUE",
			Message: "Other income must be a non-negative number",
		})
	}

	if !housingValues[f.HousingStatus] {
		errs = append(errs, ValidationError{
			Field:   "family.housingStatus",
			Code:    "INVALID_VALUE",
			Message: "Housing status must be one of: rent, own, family, other",
		})
	}

	if f.MonthlyHousingCost.Set && f.MonthlyHousingCost.Value < 0 {
		errs = append(errs, ValidationError{
			Field:   "family.monthlyHousingCost",
			Code:    "INVALID_VALUE",
			Message: "Monthly housing cost must be a non-negative number",
		})
	}

	if !f.MonthlyExpenses.Set {
		errs = append(errs, ValidationError{
			Field:   "family.monthlyExpenses",
			Code:    "MISSING_REQUIRED",
			Message: "Monthly expenses are required",
		})
	} else if f.MonthlyExpenses.Value < 0 {
		errs = append(errs, ValidationError{
			Field:   "family.monthlyExpenses",
			Code:    "INVALID_VALUE",
			Message: "Monthly expenses must be a non-negative number",
		})
	}

	if strings.TrimSpace(f.EmergencyContactName) == "" {
		errs = append(errs, ValidationError{
			Field:   "family.emergencyContactName",
			Code:    "MISSING_REQUIRED",
			Message: "Emergency contact name is required",
		})
	}

	if strings.TrimSpace(f.EmergencyContactPhone) == "" {
		errs = append(errs, ValidationError{
			Field:   "family.emergencyContactPhone",
			Code:    "MISSING_REQUIRED",
			Message: "Emergency contact phone is required",
		})
	} else if !validUAEPhone(f.EmergencyContactPhone) {
		errs = append(errs, ValidationError{
			Field:   "family.emergencyContactPhone",
			Code:    "INVALID_FORMAT",
			Message: "Emergency contact phone must be a valid UAE mobile number",
		})
	}

	return errs
}

func validateSituation(s *models.SituationSection) []ValidationError {
	errs := []ValidationError{}

	narratives := []struct {
		value, field, label string
		max                 int
	}{
		{s.FinancialSituation, "situation.financialSituation", "Current financial situation", 2000},
		{s.EmploymentCircumstances, "situation.employmentCircumstances", "Employment circumstances", 2000},
		{s.ReasonForApplying, "situation.reasonForApplying", "Reason for applying", 2000},
		{s.CurrentChallenges, "situation.currentChallenges", "Current challenges", 1500},
		{s.SupportNeeded, "situation.supportNeeded", "Support needed", 1500},
	}

	for _, n := range narratives {
		trimmed := strings.TrimSpace(n.value)
		switch {
		case trimmed == "":
			errs = append(errs, ValidationError{
				Field:   n.field,
				Code:    "MISSING_REQUIRED",
				Message: n.label + " is required",
			})
		case utf8.RuneCountInString(trimmed) < 10:
			errs = append(errs, ValidationError{
				Field:   n.field,
				Code:    "INVALID_VALUE",
				Message: fmt.Sprintf("%s must be at least 10 characters", n.label),
			})
		case utf8.RuneCountInString(trimmed) > n.max:
			errs = append(errs, ValidationError{
				Field:   n.field,
				Code:    "INVALID_VALUE",
				Message: fmt.Sprintf("%s must be at most %d characters", n.label, n.max),
			})
		}
	}

	return errs
}
