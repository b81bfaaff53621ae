package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-intelligence/internal/models"
)

func ids(venues []models.Venue) []string {
	out := make([]string, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.ID)
	}
	return out
}

func TestLoadFile_CityAndCapacityCut(t *testing.T) {
	src, err := LoadFile("testdata/venues.json", 0)
	require.NoError(t, err)

	got, err := src.Venues(context.Background(), Query{City: "mumbai", MinCapacity: 200})
	require.NoError(t, err)

	assert.Equal(t, []string{"mum-001", "mum-005", "mum-002", "mum-003", "mum-006"}, ids(got))
	for _, v := range got {
		assert.GreaterOrEqual(t, v.Capacity, 200)
	}
}

func TestFileSource_Limit(t *testing.T) {
	src, err := LoadFile("testdata/venues.json", 0)
	require.NoError(t, err)

	got, err := src.Venues(context.Background(), Query{City: "Mumbai", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"mum-007", "mum-001"}, ids(got))
}

func TestFileSource_NoMatches(t *testing.T) {
	src := NewFileSource([]models.Venue{{ID: "a", City: "Pune", Capacity: 10}}, 0)

	got, err := src.Venues(context.Background(), Query{City: "Chennai"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileSource_LatencyHonoursCancellation(t *testing.T) {
	src := NewFileSource([]models.Venue{{ID: "a", City: "Pune"}}, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := src.Venues(ctx, Query{City: "Pune"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFileSource_SimulatedLatency(t *testing.T) {
	src := NewFileSource([]models.Venue{{ID: "a", City: "Pune"}}, 15*time.Millisecond)

	start := time.Now()
	got, err := src.Venues(context.Background(), Query{City: "Pune"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestDecodeVenues(t *testing.T) {
	list, err := DecodeVenues([]byte(`[{"id":"a"},{"id":"b"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(list))

	wrapped, err := DecodeVenues([]byte(`{"venues":[{"id":"c"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(wrapped))

	_, err = DecodeVenues([]byte(`"nope"`))
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json", 0)
	assert.Error(t, err)
}
