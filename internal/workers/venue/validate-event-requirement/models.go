// internal/workers/venue/validate-event-requirement/models.go
package validateeventrequirement

import "venue-intelligence/internal/models"

type Input struct {
	EventRequirement models.EventRequirement `json:"eventRequirement"`
}

type Output struct {
	RequirementValid bool                    `json:"requirementValid"`
	EventRequirement models.EventRequirement `json:"eventRequirement"`
	ValidationErrors []string                `json:"validationErrors"`
}
