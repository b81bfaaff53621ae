// internal/workers/venue/filter-venues/models.go
package filtervenues

import (
	"encoding/json"

	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/filter"
	"venue-intelligence/internal/venue/pagination"
)

type Input struct {
	Venues []models.Venue `json:"venues"`
	// Filters stays raw so a malformed facet maps to INVALID_FILTER_FORMAT.
	Filters       json.RawMessage `json:"filters,omitempty"`
	LoadMoreCount int             `json:"loadMoreCount,omitempty"`
}

type Output struct {
	Window pagination.Window `json:"window"`
	Facets filter.Options    `json:"facets"`
}
