// internal/workers/venue/build-plan-summary/models.go
package buildplansummary

import "venue-intelligence/internal/models"

type Input struct {
	Venue            models.Venue            `json:"venue"`
	EventRequirement models.EventRequirement `json:"eventRequirement"`
	Recipients       []models.ShareRecipient `json:"recipients,omitempty"`
}

type Output struct {
	PlanID        string                `json:"planId"`
	ShareURL      string                `json:"shareUrl"`
	PlanSummary   models.PlanSummary    `json:"planSummary"`
	ShareReceipts []models.ShareReceipt `json:"shareReceipts"`
}
