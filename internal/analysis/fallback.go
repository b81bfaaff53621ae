// internal/analysis/fallback.go
package analysis

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/format"
)

// Defaults used when the catalog leaves a field empty.
const (
	fallbackRating   = 4.5
	fallbackCapacity = 200
	fallbackPrice    = 5000
)

// IntnFunc returns a value in [0,n). rand.Intn satisfies it.
type IntnFunc func(n int) int

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func bump(cond bool, base, delta int) int {
	if cond {
		return base + delta
	}
	return base - delta
}

func capAt100(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

func isMetro(city string) bool {
	return strings.EqualFold(city, "Mumbai") || strings.EqualFold(city, "Delhi")
}

// Fallback builds a deterministic heuristic analysis from venue attributes
// alone. Only the confidence level draws on intn.
func Fallback(venue models.Venue, intn IntnFunc) models.AIAnalysisResult {
	if intn == nil {
		intn = rand.Intn
	}

	rating := venue.Rating
	if rating == 0 {
		rating = fallbackRating
	}
	capacity := venue.Capacity
	if capacity == 0 {
		capacity = fallbackCapacity
	}
	price := venue.PricePerPerson
	if price == 0 {
		price = fallbackPrice
	}

	raw := rating * 15
	if capacity > 100 {
		raw += 10
	} else {
		raw += 5
	}
	if price < 8000 {
		raw += 10
	} else {
		raw += 5
	}
	base := int(math.Round(math.Min(100, math.Max(70, raw))))

	city := venue.City
	priceText := format.Grouped(price)
	ratingText := format.Rating(rating)

	location := base
	if isMetro(city) {
		location = capAt100(base + 5)
	}
	serviceScore := base
	if rating > 4.5 {
		serviceScore = capAt100(base + 5)
	}
	industryScore := base
	if venue.VenueType == models.VenueTypeHotel {
		industryScore = capAt100(base + 5)
	}

	result := models.AIAnalysisResult{
		OverallScore:       base,
		SuccessProbability: models.ProbabilityFor(base),
		RiskLevel:          models.RiskFor(base),
		Analysis: map[string]models.DimensionScore{
			models.DimensionLocation: {
				Score:   location,
				Insight: fmt.Sprintf("%s offers excellent connectivity with major transportation hubs and business districts", city),
			},
			models.DimensionCapacity: {
				Score: capAt100(bump(capacity > 150, base, 5)),
				Insight: fmt.Sprintf("Capacity of %d guests provides %s space for networking and breakout sessions",
					capacity, choose(capacity > 150, "ample", "adequate")),
			},
			models.DimensionBudget: {
				Score: capAt100(bump(price < 6000, base, 5)),
				Insight: fmt.Sprintf("₹%s per person offers %s value for premium venue quality",
					priceText, choose(price < 6000, "excellent", "good")),
			},
			models.DimensionTechnical: {
				Score: capAt100(bump(venue.WifiAvailable, base, 5)),
				Insight: fmt.Sprintf("%s technical infrastructure with %s support",
					choose(venue.WifiAvailable, "Advanced", "Standard"), choose(venue.WifiAvailable, "dedicated", "basic")),
			},
			models.DimensionService: {
				Score: serviceScore,
				Insight: fmt.Sprintf("%s-star rating indicates %s service quality for corporate events",
					ratingText, choose(rating > 4.5, "exceptional", "reliable")),
			},
			models.DimensionSeasonal: {
				Score:   capAt100(base + 5),
				Insight: "Favorable weather conditions expected with minimal seasonal impact on event success",
			},
			models.DimensionIndustry: {
				Score: industryScore,
				Insight: fmt.Sprintf("%s venue type is %s for corporate events",
					venue.DisplayType(), choose(venue.VenueType == models.VenueTypeHotel, "highly suitable", "suitable")),
			},
			models.DimensionRisk: {
				Score: capAt100(bump(venue.AvailabilityStatus == models.AvailabilityAvailable, base, 5)),
				Insight: fmt.Sprintf("%s availability with %s booking policies",
					choose(venue.AvailabilityStatus == models.AvailabilityAvailable, "Good", "Limited"),
					choose(venue.AvailabilityStatus == models.AvailabilityAvailable, "flexible", "restrictive")),
			},
		},
		KeyStrengths: []string{
			fmt.Sprintf("%s location offers excellent business connectivity", city),
			fmt.Sprintf("%d-guest capacity provides optimal space utilization", capacity),
			fmt.Sprintf("%s-star rating ensures premium service quality", ratingText),
			choose(venue.WifiAvailable, "Advanced WiFi and technical infrastructure", "Reliable basic amenities"),
			choose(venue.CateringAvailable, "Professional catering services included", "Flexible catering options available"),
		},
		PotentialRisks: []string{
			fmt.Sprintf("%s traffic patterns may affect arrival times", city),
			fmt.Sprintf("₹%s per person is %s typical budget range", priceText, choose(price > 6000, "above", "within")),
			parkingRisk(venue.ParkingCapacity),
		},
		OptimizationSuggestions: []string{
			"Schedule breaks during off-peak traffic hours",
			"Negotiate group discount for large attendee count",
			"Book additional parking spaces in advance",
			"Consider hybrid setup for better engagement",
		},
		AlternativeOptions: []models.AlternativeOption{
			{
				Suggestion:       "Consider morning start (9 AM) instead of 10 AM",
				Impact:           "Reduces traffic impact by 40%",
				ScoreImprovement: 5,
			},
		},
		ConfidenceLevel: 85 + intn(10),
		Source:          models.SourceFallback,
	}

	return result
}

func parkingRisk(spaces int) string {
	if spaces > 0 {
		return fmt.Sprintf("Limited parking (%d spaces) for large events", spaces)
	}
	return "Parking availability may be limited"
}
