package models

import "time"

type VenueSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	City           string  `json:"city"`
	Address        string  `json:"address,omitempty"`
	VenueType      string  `json:"venueType"`
	Capacity       int     `json:"capacity"`
	PricePerPerson int64   `json:"pricePerPerson"`
	PriceLabel     string  `json:"priceLabel"`
	Rating         float64 `json:"rating"`
	ImageURL       string  `json:"imageUrl,omitempty"`
}

type ScheduleItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type BudgetItem struct {
	Item      string `json:"item"`
	Amount    int64  `json:"amount"`
	Formatted string `json:"formatted"`
	Notes     string `json:"notes,omitempty"`
}

// PlanSummary is the shareable handoff produced once a venue is chosen.
type PlanSummary struct {
	ID                   string           `json:"id"`
	Venue                VenueSummary     `json:"venue"`
	Requirement          EventRequirement `json:"eventRequirement"`
	Schedule             []ScheduleItem   `json:"schedule"`
	Budget               []BudgetItem     `json:"budget"`
	TotalCost            int64            `json:"totalCost"`
	BudgetUtilizationPct float64          `json:"budgetUtilizationPct"`
	ShareURL             string           `json:"shareUrl"`
	CreatedAt            time.Time        `json:"createdAt"`
}
