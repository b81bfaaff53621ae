package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"venue-intelligence/internal/common/config"
	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/models"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Venues(ctx context.Context, q Query) ([]models.Venue, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]models.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestQueryFor(t *testing.T) {
	req := models.EventRequirement{City: "Goa", AttendeeCount: 80}
	assert.Equal(t, Query{City: "Goa", MinCapacity: 80, Limit: 50}, QueryFor(req, 50))
}

func TestInstrumented_SanitizesAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := new(MockSource)
	src.On("Venues", mock.Anything, mock.Anything).Return([]models.Venue{
		{ID: "ok", Rating: 4.1},
		{ID: "bad", Rating: 11, ParkingCapacity: -3},
	}, nil)

	got, err := Instrument(src, logger.NewZapAdapter(zap.New(core))).Venues(context.Background(), Query{City: "Pune"})
	require.NoError(t, err)

	assert.Equal(t, 5.0, got[1].Rating)
	assert.Equal(t, 0, got[1].ParkingCapacity)
	assert.Equal(t, 2, logs.FilterMessage("venue field clamped").Len())
}

func TestInstrumented_MapsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ErrCodeCatalogTimeout},
		{"driver error", errors.New("connection refused"), apperrors.ErrCodeCatalogQueryFailed},
		{"already classified", apperrors.NewSearchQueryFailedError("venues", errors.New("404")), apperrors.ErrCodeSearchQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			src.On("Venues", mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := Instrument(src, nil).Venues(context.Background(), Query{})
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.code))
		})
	}
}

func TestInstrumented_CancellationPassesThrough(t *testing.T) {
	src := new(MockSource)
	src.On("Venues", mock.Anything, mock.Anything).Return(nil, context.Canceled)

	_, err := Instrument(src, nil).Venues(context.Background(), Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	src, err := New(config.CatalogConfig{Source: SourceFile, SeedFile: "testdata/venues.json"}, Deps{}, nil)
	require.NoError(t, err)
	assert.Equal(t, SourceFile, src.Name())

	_, err = New(config.CatalogConfig{Source: SourcePostgres}, Deps{}, nil)
	assert.ErrorIs(t, err, ErrUnknownSource)

	_, err = New(config.CatalogConfig{Source: "mongo"}, Deps{}, nil)
	assert.ErrorIs(t, err, ErrUnknownSource)

	pg, err := New(config.CatalogConfig{Source: SourcePostgres}, Deps{Postgres: NewPostgresSource(nil)}, nil)
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, pg.Name())
}
