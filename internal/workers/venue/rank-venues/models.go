// internal/workers/venue/rank-venues/models.go
package rankvenues

import "venue-intelligence/internal/models"

type Input struct {
	EventRequirement models.EventRequirement `json:"eventRequirement"`
	Venues           []models.Venue          `json:"venues"`
	TopN             int                     `json:"topN,omitempty"`
}

type Output struct {
	models.RecommendationResult
	TopVenueID string `json:"topVenueId,omitempty"`
}
