// internal/models/service.go
package models

// FeaturedService is a curated government service entry the assistant can
// answer about without calling the model for grounding.
type FeaturedService struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Entity       string   `json:"entity"`
	Path         string   `json:"path"`
	Audience     []string `json:"audience"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
}

// TaxonomyCategory is one node of the services directory taxonomy.
type TaxonomyCategory struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// SupportContacts are the fallback channels quoted when the assistant cannot
// ground an answer.
type SupportContacts struct {
	Phone   string `json:"phone"`
	Website string `json:"website"`
}
