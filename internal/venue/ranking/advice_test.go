package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venue-intelligence/internal/models"
)

func recsWithPrices(prices ...int64) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(prices))
	for i, p := range prices {
		v := models.Venue{ID: string(rune('a' + i)), PricePerPerson: p}
		recs = append(recs, models.Recommendation{VenueID: v.ID, ScoredVenue: models.ScoredVenue{Venue: v}})
	}
	return recs
}

func TestBudgetAdvice(t *testing.T) {
	tests := []struct {
		name string
		req  models.EventRequirement
		recs []models.Recommendation
		want []string
	}{
		{
			name: "no venues",
			req:  models.EventRequirement{City: "Pune", AttendeeCount: 50, BudgetTotal: 100000},
			want: []string{
				"No venues found in Pune for your requirements.",
				"Consider expanding your search area or adjusting your budget.",
				"Try increasing your budget or reducing the capacity requirements.",
			},
		},
		{
			name: "efficient utilisation",
			req:  models.EventRequirement{City: "Pune", AttendeeCount: 50, BudgetTotal: 100000},
			recs: recsWithPrices(1800),
			want: []string{
				"Your budget is being utilized efficiently with these venue options.",
				"Consider booking early to secure the best rates.",
			},
		},
		{
			name: "budget flexibility",
			req:  models.EventRequirement{City: "Pune", AttendeeCount: 50, BudgetTotal: 100000},
			recs: recsWithPrices(500, 900),
			want: []string{
				"You have significant budget flexibility for this event.",
				"Consider upgrading to premium venues or adding additional services.",
			},
		},
		{
			name: "middle band says nothing about budget",
			req:  models.EventRequirement{City: "Pune", AttendeeCount: 50, BudgetTotal: 100000},
			recs: recsWithPrices(1400),
			want: nil,
		},
		{
			name: "large event with several venues",
			req:  models.EventRequirement{City: "Delhi", AttendeeCount: 200, BudgetTotal: 1000000},
			recs: recsWithPrices(3000, 3000, 3000),
			want: []string{
				"For large events, consider booking well in advance.",
				"Some venues may offer bulk discounts for large groups.",
				"Found 3 suitable venues in Delhi.",
				"Compare amenities and ratings to make the best choice.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetAdvice(tt.req, tt.recs))
		})
	}
}
