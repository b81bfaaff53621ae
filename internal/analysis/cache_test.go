package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-intelligence/internal/models"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func sampleEntry(ts int64) Entry {
	a := Fallback(mumbaiHotel(), fixedIntn(2))
	return Entry{Analysis: a, Timestamp: ts}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "venue_analysis_v-42", CacheKey("v-42"))
}

func TestEntry_Fresh(t *testing.T) {
	written := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	e := Entry{Timestamp: written.UnixMilli()}

	assert.True(t, e.Fresh(written.Add(3599*time.Second), time.Hour))
	assert.False(t, e.Fresh(written.Add(time.Hour), time.Hour))
	assert.False(t, e.Fresh(written.Add(3601*time.Second), time.Hour))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", sampleEntry(100)))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(100), got.Timestamp)
	assert.Equal(t, 1, s.Len())
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client, mr := setupRedis(t)
	s := NewRedisStore(client, 2*time.Hour)

	entry := sampleEntry(1_700_000_000_000)
	require.NoError(t, s.Set(ctx, CacheKey("v-1"), entry))

	assert.Equal(t, 2*time.Hour, mr.TTL(CacheKey("v-1")))

	got, ok, err := s.Get(ctx, CacheKey("v-1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Timestamp, got.Timestamp)
	assert.Equal(t, entry.Analysis.OverallScore, got.Analysis.OverallScore)
	assert.Equal(t, models.SourceFallback, got.Analysis.Source)
	assert.Equal(t, entry.Analysis.KeyStrengths, got.Analysis.KeyStrengths)
}

func TestRedisStore_StoredShape(t *testing.T) {
	ctx := context.Background()
	client, mr := setupRedis(t)
	s := NewRedisStore(client, 0)

	require.NoError(t, s.Set(ctx, "k", sampleEntry(42)))

	raw, err := mr.Get("k")
	require.NoError(t, err)
	assert.Contains(t, raw, `"timestamp":42`)
	assert.Contains(t, raw, `"analysis":{"overallScore":92`)
}

func TestRedisStore_Miss(t *testing.T) {
	client, _ := setupRedis(t)
	s := NewRedisStore(client, time.Hour)

	_, ok, err := s.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	client, mr := setupRedis(t)
	require.NoError(t, mr.Set("k", "not json"))

	_, ok, err := NewRedisStore(client, time.Hour).Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client, time.Minute)

	mock.ExpectGet("k").SetErr(errors.New("connection refused"))
	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	mock.Regexp().ExpectSet("k", `.*`, time.Minute).SetErr(errors.New("READONLY"))
	err = s.Set(context.Background(), "k", sampleEntry(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "READONLY")

	assert.NoError(t, mock.ExpectationsWereMet())
}
