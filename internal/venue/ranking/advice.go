package ranking

import (
	"fmt"

	"venue-intelligence/internal/models"
)

// BudgetAdvice returns planner guidance derived from how the shortlisted
// venues sit against the budget and the size of the event.
func BudgetAdvice(req models.EventRequirement, recs []models.Recommendation) []string {
	if len(recs) == 0 {
		return []string{
			fmt.Sprintf("No venues found in %s for your requirements.", req.City),
			"Consider expanding your search area or adjusting your budget.",
			"Try increasing your budget or reducing the capacity requirements.",
		}
	}

	var advice []string

	if req.BudgetTotal > 0 {
		var total float64
		for _, rec := range recs {
			total += float64(rec.ScoredVenue.Venue.TotalCost(req.AttendeeCount))
		}
		utilization := total / float64(len(recs)) / float64(req.BudgetTotal) * 100

		if utilization > 80 {
			advice = append(advice,
				"Your budget is being utilized efficiently with these venue options.",
				"Consider booking early to secure the best rates.",
			)
		} else if utilization < 50 {
			advice = append(advice,
				"You have significant budget flexibility for this event.",
				"Consider upgrading to premium venues or adding additional services.",
			)
		}
	}

	if req.AttendeeCount > 100 {
		advice = append(advice,
			"For large events, consider booking well in advance.",
			"Some venues may offer bulk discounts for large groups.",
		)
	}

	if len(recs) >= 3 {
		advice = append(advice,
			fmt.Sprintf("Found %d suitable venues in %s.", len(recs), req.City),
			"Compare amenities and ratings to make the best choice.",
		)
	}

	return advice
}
