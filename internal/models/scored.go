package models

// ScoredVenue is a venue with its heuristic score. Score is unbounded and may be negative.
type ScoredVenue struct {
	Venue           Venue    `json:"venue"`
	Score           float64  `json:"score"`
	MatchedFeatures []string `json:"matchedFeatures"`
	Reasoning       string   `json:"reasoning"`
}

// Recommendation is one ranked entry handed to the presentation layer.
type Recommendation struct {
	VenueID     string      `json:"venueId"`
	Score       float64     `json:"score"`
	Reasoning   string      `json:"reasoning"`
	KeyFeatures []string    `json:"keyFeatures"`
	ScoredVenue ScoredVenue `json:"scoredVenue"`
}

type RecommendationResult struct {
	Recommendations     []Recommendation `json:"recommendations"`
	Insights            []string         `json:"insights"`
	BudgetAdvice        []string         `json:"budgetAdvice,omitempty"`
	TotalVenuesAnalyzed int              `json:"totalVenuesAnalyzed"`
}
