// internal/workers/venue/search-venues/models.go
package searchvenues

import "venue-intelligence/internal/models"

type Input struct {
	EventRequirement models.EventRequirement `json:"eventRequirement"`
	Limit            int                     `json:"limit,omitempty"`
}

type Output struct {
	Venues        []models.Venue `json:"venues"`
	VenueCount    int            `json:"venueCount"`
	CatalogSource string         `json:"catalogSource"`
}
