// internal/models/application.go
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes from a JSON number or a numeric string. Form fields arrive
// as strings from some clients, so decoding must not fail on "3".
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Tolerate a float-shaped number like 3.0.
		fv, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil {
			return fmt.Errorf("not a number: %s", s)
		}
		v = int(fv)
	}
	f.Value = v
	f.Set = true
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// FlexFloat decodes from a JSON number or a numeric string.
type FlexFloat struct {
	Value float64
	Set   bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	f.Value = v
	f.Set = true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ApplicationDraft is the in-progress form state, one struct per wizard step.
type ApplicationDraft struct {
	Personal  PersonalSection  `json:"personal"`
	Family    FamilySection    `json:"family"`
	Situation SituationSection `json:"situation"`
	Documents DocumentsSection `json:"documents"`
}

type PersonalSection struct {
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type FamilySection struct {
	MaritalStatus         string    `json:"maritalStatus"`
	SpouseName            string    `json:"spouseName,omitempty"`
	Dependents            FlexInt   `json:"dependents"`
	HouseholdMembers      FlexInt   `json:"householdMembers"`
	EmploymentStatus      string    `json:"employmentStatus"`
	MonthlyIncome         FlexFloat `json:"monthlyIncome"`
	OtherIncome           FlexFloat `json:"otherIncome,omitempty"`
	HousingStatus         string    `json:"housingStatus"`
	MonthlyHousingCost    FlexFloat `json:"monthlyHousingCost,omitempty"`
	MonthlyExpenses       FlexFloat `json:"monthlyExpenses"`
	EmergencyContactName  string    `json:"emergencyContactName"`
	EmergencyContactPhone string    `json:"emergencyContactPhone"`
}

type SituationSection struct {
	FinancialSituation      string `json:"financialSituation"`
	EmploymentCircumstances string `json:"employmentCircumstances"`
	ReasonForApplying       string `json:"reasonForApplying"`
	CurrentChallenges       string `json:"currentChallenges"`
	SupportNeeded           string `json:"supportNeeded"`
}

// UploadedFile is a descriptor of an already-uploaded document. The portal
// stores metadata only; the binary lives in object storage.
type UploadedFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

type DocumentsSection struct {
	NationalID          []UploadedFile `json:"nationalId"`
	ProofOfAddress      []UploadedFile `json:"proofOfAddress"`
	IncomeProof         []UploadedFile `json:"incomeProof,omitempty"`
	AdditionalDocuments []UploadedFile `json:"additionalDocuments,omitempty"`
}

// Application status lifecycle.
const (
	StatusSubmitted        = "submitted"
	StatusInReview         = "in_review"
	StatusPendingDocuments = "pending_documents"
	StatusApproved         = "approved"
	StatusRejected         = "rejected"
)

// Application is a submitted application as shown on the tracking screen.
type Application struct {
	ID                  string `json:"id"`
	Reference           string `json:"reference"`
	Type                string `json:"type"`
	Status              string `json:"status"`
	SubmittedDate       string `json:"submittedDate"`
	LastUpdate          string `json:"lastUpdate"`
	EstimatedCompletion string `json:"estimatedCompletion,omitempty"`
	Progress            int    `json:"progress"`
	Notes               string `json:"notes,omitempty"`
}
