// internal/assistant/catalog/taxonomy.go
package catalog

import (
	"fmt"
	"strings"

	"social-support-portal/internal/models"
)

// Taxonomy is the canonical category list used for routing general queries.
var Taxonomy = []models.TaxonomyCategory{
	{Key: "housingProperties", Label: "Housing & Properties", Path: "/en/life-events/individual/HousingProperties"},
	{Key: "driveTransport", Label: "Drive & Transport", Path: "/en/life-events/individual/DriveTransport"},
	{Key: "identityCitizenship", Label: "Identity & Citizenship", Path: "/en/life-events/individual/Identity-Citizenship-Human-Resources"},
	{Key: "workEducation", Label: "Work & Education", Path: "/en/life-events/individual/WorkEducation"},
	{Key: "health", Label: "Healthcare Services", Path: "/en/life-events/individual/Manage-your-Health"},
	{Key: "cultureTourism", Label: "Culture & Leisure", Path: "/en/life-events/individual/CultureTourism"},
	{Key: "socialCare", Label: "Social Care", Path: "/en/life-events/individual/SupportCommunityEnvironment"},
	{Key: "policeServices", Label: "Police Services", Path: "/en/life-events/individual/police-services"},
	{Key: "agriculture", Label: "Agriculture & Livestock", Path: "/en/life-events/individual/agriculture-livestock"},
	{Key: "deceasedInheritance", Label: "Deceased & Inheritance", Path: "/en/life-events/individual/DeceasedInheritance"},
}

// TaxonomyHint renders the one-line category summary appended to system
// messages when no featured service matched.
func TaxonomyHint() string {
	entries := make([]string, 0, len(Taxonomy))
	for _, c := range Taxonomy {
		entries = append(entries, fmt.Sprintf("%s: %s", c.Label, c.Path))
	}
	return "TAXONOMY_SHORT: " + strings.Join(entries, " | ")
}

// RenderFeaturedService builds the grounding block for a matched service.
func RenderFeaturedService(svc *models.FeaturedService) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Service: %s\n", svc.Title)
	fmt.Fprintf(&b, "* Description: %s\n", svc.Description)
	b.WriteString("* Steps:\n")
	for i, step := range svc.Instructions {
		fmt.Fprintf(&b, "%d) %s\n", i+1, step)
	}
	fmt.Fprintf(&b, "* Path: %s\n", svc.Path)
	fmt.Fprintf(&b, "For exact documents and fees, call %s or visit %s and the path provided.",
		Contacts.Phone, Contacts.Website)
	return b.String()
}

// RenderCategorySuggestion builds the fallback answer pointing at a category.
func RenderCategorySuggestion(category models.TaxonomyCategory) string {
	return fmt.Sprintf(
		"I couldn't find a featured service match. The best-fit category is %s. Path: %s.\n"+
			"- What you can do: 1) Open the path in TAMM. 2) Search within the category for your sub-service. 3) Call %s for exact fees and documents.",
		category.Label, category.Path, Contacts.Phone)
}

// MissingDetails is quoted when the knowledge base has no fee or document
// information.
var MissingDetails = fmt.Sprintf(
	"The fee or exact document list is not present in the knowledge base. For confirmation, call %s or visit %s and the path provided.",
	Contacts.Phone, Contacts.Website)
