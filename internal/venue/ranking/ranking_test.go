package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/models"
)

type MockInsights struct {
	mock.Mock
}

func (m *MockInsights) Insights(req models.EventRequirement, venues []models.Venue, recs []models.Recommendation) []string {
	args := m.Called(req, venues, recs)
	return args.Get(0).([]string)
}

func requirement() models.EventRequirement {
	return models.EventRequirement{City: "Mumbai", EventType: models.EventTypeConference, AttendeeCount: 150, BudgetTotal: 1000000}
}

func venue(id string, rating float64, status models.AvailabilityStatus) models.Venue {
	return models.Venue{
		ID:                 id,
		Name:               "Venue " + id,
		City:               "Mumbai",
		Capacity:           150,
		PricePerPerson:     6000,
		VenueType:          models.VenueTypeAuditorium,
		Rating:             rating,
		WifiAvailable:      true,
		ACAvailable:        true,
		CateringAvailable:  true,
		AvailabilityStatus: status,
	}
}

func TestRank_OrdersByScoreThenRatingThenID(t *testing.T) {
	venues := []models.Venue{
		venue("c", 4.6, models.AvailabilityAvailable),
		venue("booked", 4.9, models.AvailabilityBooked),
		venue("a", 4.6, models.AvailabilityAvailable),
		venue("b", 4.9, models.AvailabilityAvailable),
	}

	result, err := NewRanker(logger.NewTestLogger(t)).Rank(requirement(), venues)
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		ids = append(ids, rec.VenueID)
	}
	assert.Equal(t, []string{"b", "a", "c", "booked"}, ids)
	assert.Equal(t, 4, result.TotalVenuesAnalyzed)
}

func TestRank_BookedVenueStillListed(t *testing.T) {
	venues := []models.Venue{venue("booked", 4.8, models.AvailabilityBooked)}

	result, err := NewRanker(nil).Rank(requirement(), venues)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, 105.0, result.Recommendations[0].Score)
}

func TestRank_TruncatesToTopN(t *testing.T) {
	var venues []models.Venue
	for i := 0; i < 12; i++ {
		venues = append(venues, venue(fmt.Sprintf("v%02d", i), 4.0, models.AvailabilityAvailable))
	}

	result, err := NewRanker(nil).Rank(requirement(), venues)
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, DefaultTopN)
	assert.Equal(t, 12, result.TotalVenuesAnalyzed)
	assert.Equal(t, "v00", result.Recommendations[0].VenueID)

	result, err = NewRanker(nil, WithTopN(3)).Rank(requirement(), venues)
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 3)
}

func TestRank_KeyFeaturesAreFirstFiveLabels(t *testing.T) {
	result, err := NewRanker(nil).Rank(requirement(), []models.Venue{venue("v", 4.8, models.AvailabilityAvailable)})
	require.NoError(t, err)

	rec := result.Recommendations[0]
	assert.Equal(t, []string{
		"Perfect capacity match",
		"Within budget",
		"Free WiFi",
		"Air Conditioning",
		"Catering Services",
	}, rec.KeyFeatures)
	assert.Len(t, rec.ScoredVenue.MatchedFeatures, 8)
	assert.Contains(t, rec.ScoredVenue.MatchedFeatures, "Excellent rating")
	assert.Equal(t, rec.ScoredVenue.Reasoning, rec.Reasoning)
}

func TestRank_TemplateInsights(t *testing.T) {
	venues := []models.Venue{venue("a", 4.2, models.AvailabilityAvailable), venue("b", 4.2, models.AvailabilityAvailable)}

	result, err := NewRanker(nil).Rank(requirement(), venues)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Found 2 venues matching your criteria in Mumbai",
		"Top venues offer excellent amenities including WiFi, AC, and catering services",
		"Consider booking early to secure the best rates and availability",
		"Venues with parking facilities are highly recommended for guest convenience",
		"Heritage venues provide unique cultural experiences for special events",
	}, result.Insights)
}

func TestRank_UsesInjectedInsightGenerator(t *testing.T) {
	gen := new(MockInsights)
	gen.On("Insights", mock.Anything, mock.Anything, mock.Anything).Return([]string{"custom"})

	venues := []models.Venue{venue("a", 4.2, models.AvailabilityAvailable)}
	result, err := NewRanker(nil, WithInsights(gen)).Rank(requirement(), venues)
	require.NoError(t, err)

	assert.Equal(t, []string{"custom"}, result.Insights)
	assert.Equal(t, 215.0, result.Recommendations[0].Score)
	gen.AssertNumberOfCalls(t, "Insights", 1)
}

func TestRank_EmptyCatalog(t *testing.T) {
	result, err := NewRanker(nil).Rank(requirement(), nil)
	require.NoError(t, err)

	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0, result.TotalVenuesAnalyzed)
	assert.Equal(t, "Found 0 venues matching your criteria in Mumbai", result.Insights[0])
	assert.Equal(t, "No venues found in Mumbai for your requirements.", result.BudgetAdvice[0])
}

func TestRank_RejectsInvalidRequirement(t *testing.T) {
	req := requirement()
	req.BudgetTotal = 0

	_, err := NewRanker(nil).Rank(req, []models.Venue{venue("a", 4, models.AvailabilityAvailable)})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestSortScored_IsDeterministicForEqualEntries(t *testing.T) {
	scored := []models.ScoredVenue{
		{Venue: models.Venue{ID: "z", Rating: 4}, Score: 10},
		{Venue: models.Venue{ID: "m", Rating: 4}, Score: 10},
		{Venue: models.Venue{ID: "a", Rating: 3}, Score: 10},
		{Venue: models.Venue{ID: "q", Rating: 1}, Score: 11},
	}

	SortScored(scored)

	assert.Equal(t, "q", scored[0].Venue.ID)
	assert.Equal(t, "m", scored[1].Venue.ID)
	assert.Equal(t, "z", scored[2].Venue.ID)
	assert.Equal(t, "a", scored[3].Venue.ID)
}
