package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venue-intelligence/internal/models"
)

func fixedIntn(v int) IntnFunc {
	return func(n int) int { return v % n }
}

func mumbaiHotel() models.Venue {
	return models.Venue{
		ID:                 "v-1",
		Name:               "Harbour Hotel",
		City:               "Mumbai",
		Capacity:           150,
		PricePerPerson:     6000,
		VenueType:          models.VenueTypeHotel,
		Rating:             4.8,
		WifiAvailable:      true,
		CateringAvailable:  true,
		AvailabilityStatus: models.AvailabilityAvailable,
	}
}

func TestFallback_MumbaiHotel(t *testing.T) {
	got := Fallback(mumbaiHotel(), fixedIntn(9))

	assert.Equal(t, 92, got.OverallScore)
	assert.Equal(t, models.LevelHigh, got.SuccessProbability)
	assert.Equal(t, models.LevelLow, got.RiskLevel)
	assert.Equal(t, 94, got.ConfidenceLevel)
	assert.Equal(t, models.SourceFallback, got.Source)

	scores := map[string]int{}
	for k, v := range got.Analysis {
		scores[k] = v.Score
	}
	assert.Equal(t, map[string]int{
		models.DimensionLocation:  97,
		models.DimensionCapacity:  87,
		models.DimensionBudget:    87,
		models.DimensionTechnical: 97,
		models.DimensionService:   97,
		models.DimensionSeasonal:  97,
		models.DimensionIndustry:  97,
		models.DimensionRisk:      97,
	}, scores)

	assert.Equal(t, "Capacity of 150 guests provides adequate space for networking and breakout sessions",
		got.Analysis[models.DimensionCapacity].Insight)
	assert.Equal(t, "₹6,000 per person offers good value for premium venue quality",
		got.Analysis[models.DimensionBudget].Insight)
	assert.Equal(t, "4.8-star rating indicates exceptional service quality for corporate events",
		got.Analysis[models.DimensionService].Insight)

	assert.Equal(t, []string{
		"Mumbai location offers excellent business connectivity",
		"150-guest capacity provides optimal space utilization",
		"4.8-star rating ensures premium service quality",
		"Advanced WiFi and technical infrastructure",
		"Professional catering services included",
	}, got.KeyStrengths)
	assert.Equal(t, []string{
		"Mumbai traffic patterns may affect arrival times",
		"₹6,000 per person is within typical budget range",
		"Parking availability may be limited",
	}, got.PotentialRisks)
	assert.Len(t, got.OptimizationSuggestions, 4)
	assert.Equal(t, 5, got.AlternativeOptions[0].ScoreImprovement)
}

func TestFallback_DefaultsForMissingFields(t *testing.T) {
	got := Fallback(models.Venue{ID: "bare", City: "Pune", ParkingCapacity: 40}, fixedIntn(0))

	// rating 4.5, capacity 200, price 5000: 67.5 + 10 + 10
	assert.Equal(t, 88, got.OverallScore)
	assert.Equal(t, 85, got.ConfidenceLevel)
	assert.Equal(t, 88, got.Analysis[models.DimensionLocation].Score)
	assert.Equal(t, "Capacity of 200 guests provides ample space for networking and breakout sessions",
		got.Analysis[models.DimensionCapacity].Insight)
	assert.Equal(t, "Limited parking (40 spaces) for large events", got.PotentialRisks[2])
	assert.Equal(t, "Limited availability with restrictive booking policies", got.Analysis[models.DimensionRisk].Insight)
}

func TestFallback_FloorsAtSeventy(t *testing.T) {
	v := models.Venue{ID: "low", City: "Agra", Rating: 1, Capacity: 50, PricePerPerson: 9000}
	got := Fallback(v, fixedIntn(3))

	assert.Equal(t, 70, got.OverallScore)
	assert.Equal(t, models.LevelLow, got.SuccessProbability)
	assert.Equal(t, models.LevelHigh, got.RiskLevel)
	assert.Equal(t, "₹9,000 per person is above typical budget range", got.PotentialRisks[1])
}

func TestFallback_IsDeterministicApartFromConfidence(t *testing.T) {
	a := Fallback(mumbaiHotel(), fixedIntn(1))
	b := Fallback(mumbaiHotel(), fixedIntn(7))

	a.ConfidenceLevel, b.ConfidenceLevel = 0, 0
	assert.Equal(t, a, b)
}

func TestFallback_ScoresStayInRange(t *testing.T) {
	v := mumbaiHotel()
	v.Rating = 5
	v.Capacity = 1000
	v.PricePerPerson = 1000

	// 75 + 10 + 10
	got := Fallback(v, nil)
	assert.Equal(t, 95, got.OverallScore)
	for key, dim := range got.Analysis {
		assert.LessOrEqual(t, dim.Score, 100, key)
	}
	assert.GreaterOrEqual(t, got.ConfidenceLevel, 85)
	assert.Less(t, got.ConfidenceLevel, 95)
}
