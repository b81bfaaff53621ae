package filtervenues

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/models"
)

func createTestConfig() *Config {
	return &Config{Timeout: time.Second, PageSize: 6, Increment: 6}
}

// fifteen venues; every third is a hotel, the rest banquet halls.
func catalogue() []models.Venue {
	venues := make([]models.Venue, 0, 15)
	for i := 0; i < 15; i++ {
		v := models.Venue{
			ID:                 fmt.Sprintf("v%02d", i),
			Capacity:           100 + i*20,
			PricePerPerson:     int64(2500 + i*500),
			VenueType:          models.VenueTypeBanquetHall,
			AvailabilityStatus: models.AvailabilityAvailable,
			WifiAvailable:      i%2 == 0,
		}
		if i%3 == 0 {
			v.VenueType = models.VenueTypeHotel
		}
		venues = append(venues, v)
	}
	return venues
}

func TestHandler_Execute_NoFiltersShowsFirstPage(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Venues: catalogue()})
	require.NoError(t, err)

	assert.Equal(t, 6, out.Window.Visible)
	assert.Equal(t, 15, out.Window.Total)
	assert.True(t, out.Window.HasMore)
	assert.Equal(t, "v00", out.Window.Items[0].ID)
	assert.NotEmpty(t, out.Facets.VenueTypes)
}

func TestHandler_Execute_LoadMoreIsClamped(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Venues: catalogue(), LoadMoreCount: 1})
	require.NoError(t, err)
	assert.Equal(t, 12, out.Window.Visible)

	out, err = h.Execute(context.Background(), &Input{Venues: catalogue(), LoadMoreCount: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, out.Window.Visible)
	assert.False(t, out.Window.HasMore)
}

func TestHandler_Execute_Facets(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	filters := json.RawMessage(`{"venueTypes":["hotel"],"amenities":["wifi"],"priceRange":[0,9000]}`)
	out, err := h.Execute(context.Background(), &Input{Venues: catalogue(), Filters: filters})
	require.NoError(t, err)

	// hotels at 0,3,6,9,12; wifi on even ids; price <= 9000 up to v13
	ids := make([]string, 0, len(out.Window.Items))
	for _, v := range out.Window.Items {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"v00", "v06", "v12"}, ids)
	assert.Equal(t, []string{"hotel"}, out.Window.Filters.VenueTypes)
	assert.False(t, out.Window.HasMore)
}

func TestHandler_Execute_InvalidFilters(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	tests := []json.RawMessage{
		json.RawMessage(`{"priceRange":"cheap"}`),
		json.RawMessage(`{"capacityRange":[500,100]}`),
		json.RawMessage(`{"venueTypes":"hotel"}`),
	}
	for _, raw := range tests {
		_, err := h.Execute(context.Background(), &Input{Venues: catalogue(), Filters: raw})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFilterFormat), string(raw))
	}
}

func TestHandler_Execute_EmptyCatalogue(t *testing.T) {
	h := NewHandler(nil, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{Filters: json.RawMessage(`null`), LoadMoreCount: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Window.Visible)
	assert.NotNil(t, out.Window.Items)
	assert.False(t, out.Window.HasMore)
}
