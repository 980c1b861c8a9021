// internal/assistant/catalog/search.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"social-support-portal/internal/common/database"
	"social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
)

// Searcher answers directory queries. With an Elasticsearch client it
// queries the services index; without one, or when the index call fails, it
// degrades to a linear scan over the featured list.
type Searcher struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewSearcher(es *database.ElasticsearchClient, index string, log logger.Logger) *Searcher {
	return &Searcher{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "directory-search"}),
	}
}

// Search returns services matching the query. Never errors out to the
// caller for backend trouble; the fallback scan always answers.
func (s *Searcher) Search(ctx context.Context, query string) []models.FeaturedService {
	if s.es != nil {
		results, err := s.searchIndex(ctx, query)
		if err == nil {
			return results
		}
		s.logger.Warn("index search failed, falling back to scan", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return linearScan(query)
}

func (s *Searcher) searchIndex(ctx context.Context, query string) ([]models.FeaturedService, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^2", "description", "id"},
			},
		},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	res, err := s.es.Client.Search(
		s.es.Client.Search.WithContext(ctx),
		s.es.Client.Search.WithIndex(s.index),
		s.es.Client.Search.WithBody(strings.NewReader(string(encoded))),
	)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search error: %s", res.Status()))
	}

	var decoded struct {
		Hits struct {
			Hits []struct {
				Source models.FeaturedService `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	results := make([]models.FeaturedService, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}

func linearScan(query string) []models.FeaturedService {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.FeaturedService{}
	}

	results := []models.FeaturedService{}
	for _, svc := range FeaturedServices {
		haystack := strings.ToLower(svc.Title + " " + svc.Description + " " + svc.ID + " " + svc.Entity)
		if strings.Contains(haystack, q) {
			results = append(results, svc)
		}
	}
	return results
}
