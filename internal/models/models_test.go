package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "venue-intelligence/internal/common/errors"
)

func TestEventRequirement_Validate(t *testing.T) {
	valid := EventRequirement{City: "Mumbai", EventType: EventTypeConference, AttendeeCount: 100, BudgetTotal: 500000}

	tests := []struct {
		name    string
		mutate  func(r *EventRequirement)
		wantErr string
	}{
		{name: "valid", mutate: func(r *EventRequirement) {}},
		{name: "blank city", mutate: func(r *EventRequirement) { r.City = "   " }, wantErr: "city is required"},
		{name: "zero attendees", mutate: func(r *EventRequirement) { r.AttendeeCount = 0 }, wantErr: "attendeeCount"},
		{name: "negative budget", mutate: func(r *EventRequirement) { r.BudgetTotal = -1 }, wantErr: "budgetTotal"},
		{name: "bad preference", mutate: func(r *EventRequirement) { r.PreferredVenueType = "Underwater" }, wantErr: "preferredVenueType"},
		{
			name: "inverted dates",
			mutate: func(r *EventRequirement) {
				start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
				r.DateRange = &DateRange{Start: start, End: start.AddDate(0, 0, -1)}
			},
			wantErr: "dateRange",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
			se, _ := apperrors.AsStandard(err)
			assert.Contains(t, se.Details, tt.wantErr)
		})
	}
}

func TestEventRequirement_ValidateCollectsAllProblems(t *testing.T) {
	err := EventRequirement{}.Validate()
	require.Error(t, err)
	se, ok := apperrors.AsStandard(err)
	require.True(t, ok)
	assert.Contains(t, se.Details, "city is required")
	assert.Contains(t, se.Details, "attendeeCount must be positive")
	assert.Contains(t, se.Details, "budgetTotal must be positive")
}

func TestDateRange_Days(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DateRange{Start: start, End: start}.Days())
	assert.Equal(t, 3, DateRange{Start: start, End: start.AddDate(0, 0, 2)}.Days())
}

func TestVenue_TagsUnion(t *testing.T) {
	v := Venue{
		Amenities:         []string{"wifi", "parking", "spa_access"},
		EnhancedAmenities: []string{"Spa_Access", "business_center"},
	}

	assert.Equal(t, []string{"wifi", "parking", "spa_access", "business_center"}, v.Tags())
	assert.True(t, v.HasTag("business_center"))
	assert.True(t, v.HasTag("SPA_ACCESS"))
	assert.False(t, v.HasTag("pool_access"))
}

func TestVenue_TotalCost(t *testing.T) {
	v := Venue{PricePerPerson: 4500}
	assert.Equal(t, int64(450000), v.TotalCost(100))
}

func TestVenue_Sanitized(t *testing.T) {
	v := Venue{ID: "v-1", Rating: 7.2, ParkingCapacity: -5, Capacity: 200, PricePerPerson: 3000}

	got, warnings := v.Sanitized()

	assert.Equal(t, 5.0, got.Rating)
	assert.Equal(t, 0, got.ParkingCapacity)
	assert.Equal(t, 7.2, v.Rating, "original must not be modified")
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, apperrors.ErrCodeDataIntegrityWarning, w.Code)
		assert.Equal(t, "v-1", w.Metadata["venueId"])
	}
}

func TestVenue_SanitizedCleanVenue(t *testing.T) {
	_, warnings := Venue{ID: "v-2", Rating: 4.2, Capacity: 10, PricePerPerson: 100}.Sanitized()
	assert.Empty(t, warnings)
}

func TestRange_Contains(t *testing.T) {
	assert.True(t, Range{Min: 2000, Max: 10000}.Contains(2000))
	assert.True(t, Range{Min: 2000, Max: 10000}.Contains(10000))
	assert.False(t, Range{Min: 2000, Max: 10000}.Contains(10001))
	assert.True(t, Range{Min: 50}.Contains(1_000_000))
	assert.False(t, Range{Min: 50}.Contains(49))
}

func TestRange_UnmarshalJSON(t *testing.T) {
	var fs FilterState
	require.NoError(t, json.Unmarshal([]byte(`{"priceRange":[2000,8000],"capacityRange":{"min":50,"max":300}}`), &fs))
	assert.Equal(t, Range{Min: 2000, Max: 8000}, fs.PriceRange)
	assert.Equal(t, Range{Min: 50, Max: 300}, fs.CapacityRange)

	var r Range
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &r))
	assert.Error(t, json.Unmarshal([]byte(`"cheap"`), &r))
}

func TestFilterState_Validate(t *testing.T) {
	assert.NoError(t, DefaultFilterState().Validate())
	assert.NoError(t, FilterState{}.Validate())
	assert.Error(t, FilterState{PriceRange: Range{Min: 9000, Max: 100}}.Validate())
	assert.Error(t, FilterState{CapacityRange: Range{Min: -1}}.Validate())
	assert.True(t, FilterState{}.IsEmpty())
	assert.False(t, DefaultFilterState().IsEmpty())
}

func TestAIAnalysisResult_Normalize(t *testing.T) {
	a := AIAnalysisResult{
		OverallScore:       140,
		SuccessProbability: "Certain",
		ConfidenceLevel:    -3,
		Analysis: map[string]DimensionScore{
			DimensionLocation: {Score: 120, Insight: "central"},
			DimensionBudget:   {Score: -10},
		},
	}

	a.Normalize()

	assert.Equal(t, 100, a.OverallScore)
	assert.Equal(t, 0, a.ConfidenceLevel)
	assert.Equal(t, LevelHigh, a.SuccessProbability)
	assert.Equal(t, LevelLow, a.RiskLevel)
	assert.Len(t, a.Analysis, len(Dimensions))
	assert.Equal(t, 100, a.Analysis[DimensionLocation].Score)
	assert.Equal(t, "central", a.Analysis[DimensionLocation].Insight)
	assert.Equal(t, 0, a.Analysis[DimensionBudget].Score)
	assert.Equal(t, 100, a.Analysis[DimensionRisk].Score)
	assert.NotNil(t, a.KeyStrengths)
	assert.NotNil(t, a.AlternativeOptions)
}

func TestProbabilityAndRiskBands(t *testing.T) {
	assert.Equal(t, LevelHigh, ProbabilityFor(86))
	assert.Equal(t, LevelMedium, ProbabilityFor(85))
	assert.Equal(t, LevelLow, ProbabilityFor(70))
	assert.Equal(t, LevelLow, RiskFor(86))
	assert.Equal(t, LevelMedium, RiskFor(71))
	assert.Equal(t, LevelHigh, RiskFor(70))
}

func TestAIAnalysisResult_Clone(t *testing.T) {
	orig := AIAnalysisResult{
		OverallScore:       80,
		Analysis:           map[string]DimensionScore{DimensionBudget: {Score: 70}},
		KeyStrengths:       []string{"central"},
		AlternativeOptions: []AlternativeOption{{Suggestion: "smaller hall"}},
	}

	c := orig.Clone()
	c.Analysis[DimensionBudget] = DimensionScore{Score: 1}
	c.KeyStrengths[0] = "changed"
	c.AlternativeOptions[0].Suggestion = "changed"

	assert.Equal(t, 70, orig.Analysis[DimensionBudget].Score)
	assert.Equal(t, "central", orig.KeyStrengths[0])
	assert.Equal(t, "smaller hall", orig.AlternativeOptions[0].Suggestion)
	assert.Nil(t, AIAnalysisResult{}.Clone().PotentialRisks)
}
