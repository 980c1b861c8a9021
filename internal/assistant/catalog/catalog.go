// internal/assistant/catalog/catalog.go

// Package catalog holds the curated services directory the assistant
// answers from: featured services checked before any model call, the routing
// taxonomy, and the response templates built from them.
package catalog

import (
	"strings"

	"social-support-portal/internal/models"
)

// FeaturedServices is the first-place lookup table for high-priority
// services. Order is match priority: the first service whose keywords appear
// in the prompt wins.
var FeaturedServices = []models.FeaturedService{
	{
		ID:          "DED/0123",
		Title:       "Golden Visa Nomination",
		Entity:      "DED",
		Path:        "/wb/ded/golden-visa/request-for-golden-visa-nomination",
		Audience:    []string{"Expats", "Investors", "Talent"},
		Description: "Request a nomination to initiate the Golden Visa application; finalization occurs at the Federal Authority (ICP).",
		Instructions: []string{
			"Open TAMM → Life Events → Identity & Citizenship → Citizenship → Golden Visa",
			"Select 'Request nomination' and complete the nomination form",
			"Upload required documents (verify exact list via the official path or call 800 555)",
			"Follow ICP instructions to finalise the visa application",
		},
	},
	{
		ID:          "MOHRE/0009",
		Title:       "Domestic Worker Contracts",
		Entity:      "MOHRE",
		Path:        "/wb/mohre/issue-new-work-contract-for-domestic-worker",
		Audience:    []string{"Emirati", "Expat", "Business"},
		Description: "Employers can request issuance of a new work contract for domestic workers.",
		Instructions: []string{
			"Open TAMM → Work & Education → Employment or MOHRE Services",
			"Select 'Issue new work contract for domestic worker' and complete employer and worker details",
			"Upload contract documents and submit (confirm required documents via the official path or call 800 555)",
		},
	},
	{
		ID:          "ADEK/REPORT/2012",
		Title:       "Attested Educational Report Card",
		Entity:      "ADEK",
		Path:        "/wb/adek/report-card-academic-year",
		Audience:    []string{"Students", "Parents"},
		Description: "Issue an attested report card for records published from 2012 onwards.",
		Instructions: []string{
			"Open TAMM → Work & Education → Educational Services → Report Cards",
			"Provide student details and academic year",
			"Upload scanned documents if required (confirm exact checklist via official path or call 800 555)",
		},
	},
}

// Contacts are the single-source fallback channels.
var Contacts = models.SupportContacts{
	Phone:   "800 555",
	Website: "https://www.tamm.abudhabi/",
}

// phraseTriggers map common user phrasings to a word of the target service
// title, covering prompts that never mention the service name verbatim.
var phraseTriggers = map[string]string{
	"golden visa":     "golden",
	"domestic worker": "domestic",
	"report card":     "report",
}

// Match scans the featured list in priority order and returns the first
// service whose keywords appear in the prompt, or nil.
func Match(prompt string) *models.FeaturedService {
	text := strings.ToLower(prompt)

	for i := range FeaturedServices {
		svc := &FeaturedServices[i]

		for _, keyword := range serviceKeywords(svc) {
			if keyword != "" && strings.Contains(text, keyword) {
				return svc
			}
		}

		for phrase, titleWord := range phraseTriggers {
			if strings.Contains(text, phrase) &&
				strings.Contains(strings.ToLower(svc.Title), titleWord) {
				return svc
			}
		}
	}
	return nil
}

// serviceKeywords derives the match keys: title, id, path, audience tags and
// the first word of the first three instructions.
func serviceKeywords(svc *models.FeaturedService) []string {
	keywords := []string{
		strings.ToLower(svc.Title),
		strings.ToLower(svc.ID),
		strings.ToLower(svc.Path),
	}
	for _, audience := range svc.Audience {
		keywords = append(keywords, strings.ToLower(audience))
	}
	for i, instruction := range svc.Instructions {
		if i >= 3 {
			break
		}
		if fields := strings.Fields(instruction); len(fields) > 0 {
			keywords = append(keywords, strings.ToLower(fields[0]))
		}
	}
	return keywords
}
