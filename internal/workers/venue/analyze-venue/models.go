// internal/workers/venue/analyze-venue/models.go
package analyzevenue

import "venue-intelligence/internal/models"

type Input struct {
	Venue            models.Venue            `json:"venue"`
	EventRequirement models.EventRequirement `json:"eventRequirement"`
}

type Output struct {
	Analysis       models.AIAnalysisResult `json:"analysis"`
	AnalysisSource models.AnalysisSource   `json:"analysisSource"`
}
