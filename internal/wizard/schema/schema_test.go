// internal/wizard/schema/schema_test.go
package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-support-portal/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createValidDraft() *models.ApplicationDraft {
	return &models.ApplicationDraft{
		Personal: models.PersonalSection{
			Name:       "Fatima Al Mansouri",
			NationalID: "784-1990-1234567-1",
			DOB:        "1990-04-12",
			Gender:     "female",
			Address:    "Al Falah Street 12",
			City:       "Abu Dhabi",
			State:      "Abu Dhabi",
			Country:    "United Arab Emirates",
			Phone:      "+971501234567",
			Email:      "fatima@example.com",
		},
		Family: models.FamilySection{
			MaritalStatus:         "married",
			SpouseName:            "Ahmed Al Mansouri",
			Dependents:            models.FlexInt{Value: 2, Set: true},
			HouseholdMembers:      models.FlexInt{Value: 4, Set: true},
			EmploymentStatus:      "unemployed",
			MonthlyIncome:         models.FlexFloat{Value: 0, Set: true},
			HousingStatus:         "rent",
			MonthlyHousingCost:    models.FlexFloat{Value: 3500, Set: true},
			MonthlyExpenses:       models.FlexFloat{Value: 5200, Set: true},
			EmergencyContactName:  "Mariam Al Mansouri",
			EmergencyContactPhone: "0501234568",
		},
		Situation: models.SituationSection{
			FinancialSituation:      "I lost my job three months ago and savings are nearly exhausted.",
			EmploymentCircumstances: "I was laid off when my employer downsized and am actively searching.",
			ReasonForApplying:       "I need temporary support to cover rent and essentials for my family.",
			CurrentChallenges:       "Rising rent costs and two children in school.",
			SupportNeeded:           "Monthly financial assistance until I find new employment.",
		},
		Documents: models.DocumentsSection{
			NationalID: []models.UploadedFile{
				{Name: "eid.pdf", Size: 120000, Type: "application/pdf"},
			},
			ProofOfAddress: []models.UploadedFile{
				{Name: "tenancy.pdf", Size: 250000, Type: "application/pdf"},
			},
		},
	}
}

func fieldErrors(result *ValidationResult) map[string]string {
	out := make(map[string]string, len(result.Errors))
	for _, e := range result.Errors {
		out[e.Field] = e.Code
	}
	return out
}

// ==========================
// Section Validation Tests
// ==========================

func TestValidateAll_ValidDraft(t *testing.T) {
	result := ValidateAll(createValidDraft())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidatePersonal_EmiratesID(t *testing.T) {
	tests := []struct {
		name       string
		nationalID string
		valid      bool
	}{
		{"with dashes", "784-1990-1234567-1", true},
		{"without dashes", "784199012345671", true},
		{"wrong prefix", "123-1990-1234567-1", false},
		{"too short", "784-1990-12345-1", false},
		{"letters", "784-abcd-1234567-1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := createValidDraft()
			draft.Personal.NationalID = tt.nationalID

			result := ValidateSection(SectionPersonal, draft)

			if tt.valid {
				assert.True(t, result.IsValid)
			} else {
				assert.False(t, result.IsValid)
				assert.Contains(t, fieldErrors(result), "personal.nationalId")
			}
		})
	}
}

func TestValidatePersonal_UAEPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"plus prefix", "+971501234567", true},
		{"double zero prefix", "00971501234567", true},
		{"local prefix", "0501234567", true},
		{"spaces and dashes stripped", "+971 50-123-4567", true},
		{"too few digits", "+97150123456", false},
		{"foreign number", "+14155551234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := createValidDraft()
			draft.Personal.Phone = tt.phone

			result := ValidateSection(SectionPersonal, draft)

			assert.Equal(t, tt.valid, result.IsValid, "errors: %v", result.Errors)
		})
	}
}

func TestValidatePersonal_AgeRequirement(t *testing.T) {
	draft := createValidDraft()
	draft.Personal.DOB = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")

	result := ValidateSection(SectionPersonal, draft)

	assert.False(t, result.IsValid)
	assert.Equal(t, "INVALID_VALUE", fieldErrors(result)["personal.dob"])
}

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		now  string
		want int
	}{
		{"day before birthday", "1990-04-12", "2026-04-11", 35},
		{"exact birthday", "1990-04-12", "2026-04-12", 36},
		{"leap-year dob, 18th birthday in common year", "2008-03-01", "2026-03-01", 18},
		{"leap-day dob before Mar 1", "2008-02-29", "2026-02-28", 17},
		{"leap-day dob on Mar 1", "2008-02-29", "2026-03-01", 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dob, ok := parseDOB(tt.dob)
			require.True(t, ok)
			now, ok := parseDOB(tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.want, ageAt(dob, now))
		})
	}
}

func TestValidateFamily_SpouseNameRequiredWhenMarried(t *testing.T) {
	draft := createValidDraft()
	draft.Family.SpouseName = ""

	result := ValidateSection(SectionFamily, draft)
	assert.False(t, result.IsValid)
	assert.Equal(t, "MISSING_REQUIRED", fieldErrors(result)["family.spouseName"])

	// Single applicants never need a spouse name.
	draft.Family.MaritalStatus = "single"
	result = ValidateSection(SectionFamily, draft)
	assert.True(t, result.IsValid)
}

func TestValidateFamily_NumericBounds(t *testing.T) {
	draft := createValidDraft()
	draft.Family.Dependents = models.FlexInt{Value: -1, Set: true}
	draft.Family.HouseholdMembers = models.FlexInt{Value: 0, Set: true}
	draft.Family.MonthlyIncome = models.FlexFloat{Value: -100, Set: true}

	result := ValidateSection(SectionFamily, draft)

	errs := fieldErrors(result)
	assert.Equal(t, "INVALID_VALUE", errs["family.dependents"])
	assert.Equal(t, "INVALID_VALUE", errs["family.householdMembers"])
	assert.Equal(t, "INVALID_VALUE", errs["family.monthlyIncome"])
}

func TestValidateSituation_NarrativeLengths(t *testing.T) {
	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}

	draft := createValidDraft()
	draft.Situation.FinancialSituation = "too short"
	draft.Situation.ReasonForApplying = string(long)

	result := ValidateSection(SectionSituation, draft)

	errs := fieldErrors(result)
	assert.Equal(t, "INVALID_VALUE", errs["situation.financialSituation"])
	assert.Equal(t, "INVALID_VALUE", errs["situation.reasonForApplying"])
}

func TestValidateSituation_LengthsCountCharactersNotBytes(t *testing.T) {
	// Arabic text is two bytes per character; bounds apply to characters.
	draft := createValidDraft()
	draft.Situation.CurrentChallenges = strings.Repeat("م", 1000)
	draft.Situation.SupportNeeded = "أحتاج دعماً"

	result := ValidateSection(SectionSituation, draft)
	assert.True(t, result.IsValid)

	draft.Situation.CurrentChallenges = strings.Repeat("م", 1501)
	draft.Situation.SupportNeeded = "دعم"

	result = ValidateSection(SectionSituation, draft)
	errs := fieldErrors(result)
	assert.Equal(t, "INVALID_VALUE", errs["situation.currentChallenges"])
	assert.Equal(t, "INVALID_VALUE", errs["situation.supportNeeded"])
}

func TestValidateDocuments(t *testing.T) {
	t.Run("missing required slot", func(t *testing.T) {
		draft := createValidDraft()
		draft.Documents.ProofOfAddress = nil

		result := ValidateSection(SectionDocuments, draft)

		assert.False(t, result.IsValid)
	})

	t.Run("file too large", func(t *testing.T) {
		draft := createValidDraft()
		draft.Documents.NationalID[0].Size = 6 * 1024 * 1024

		result := ValidateSection(SectionDocuments, draft)

		assert.False(t, result.IsValid)
	})

	t.Run("unsupported mime type", func(t *testing.T) {
		draft := createValidDraft()
		draft.Documents.NationalID[0].Type = "application/zip"

		result := ValidateSection(SectionDocuments, draft)

		assert.False(t, result.IsValid)
	})
}

func TestValidateSection_UnknownSection(t *testing.T) {
	result := ValidateSection("bogus", createValidDraft())

	assert.False(t, result.IsValid)
	assert.Equal(t, "INVALID_VALUE", result.Errors[0].Code)
}
