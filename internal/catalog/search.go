// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/models"
)

// SearchSource reads the venues index.
type SearchSource struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchSource(client *elasticsearch.Client, index string) *SearchSource {
	if index == "" {
		index = "venues"
	}
	return &SearchSource{client: client, index: index}
}

func (s *SearchSource) Name() string { return SourceElasticsearch }

// buildQuery matches the city case-insensitively and keeps venues with at
// least MinCapacity seats, best rated first.
func buildQuery(q Query) map[string]interface{} {
	filters := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"capacity": map[string]interface{}{"gte": q.MinCapacity},
			},
		},
	}

	must := []interface{}{}
	if q.City != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{
				"city": map[string]interface{}{"query": q.City, "operator": "and"},
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	return map[string]interface{}{
		"size": q.limit(),
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filters,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"rating": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"id": map[string]interface{}{"order": "asc"}},
		},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Venue `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *SearchSource) Venues(ctx context.Context, q Query) ([]models.Venue, error) {
	body, err := json.Marshal(buildQuery(q))
	if err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(s.index, fmt.Errorf("%s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	venues := make([]models.Venue, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		venues = append(venues, hit.Source)
	}
	return venues, nil
}
