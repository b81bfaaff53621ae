package plan

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

	apperrors "venue-intelligence/internal/common/errors"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	client, mr := setupRedis(t)
	store := NewRedisStore(client, 24*time.Hour)
	ctx := context.Background()

	plan, err := testBuilder().Build(harbourHall(), conference())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, plan))

	assert.Equal(t, 24*time.Hour, mr.TTL("plan_summary_plan-1"))

	got, err := store.Get(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, plan.TotalCost, got.TotalCost)
	assert.Equal(t, plan.Schedule, got.Schedule)
	assert.True(t, plan.CreatedAt.Equal(got.CreatedAt))
}

func TestRedisStore_Expired(t *testing.T) {
	client, mr := setupRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	plan, err := testBuilder().Build(harbourHall(), conference())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, plan))

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, plan.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePlanNotFound))
}

func TestRedisStore_BackendErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	mock.ExpectGet("plan_summary_x").SetErr(errors.New("i/o timeout"))
	_, err := store.Get(ctx, "x")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePlanStoreFailed))

	mock.ExpectGet("plan_summary_y").SetVal("{broken")
	_, err = store.Get(ctx, "y")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePlanStoreFailed))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePlanNotFound))

	plan, err := testBuilder().Build(harbourHall(), conference())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, plan))

	got, err := store.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan, got)
}
