// internal/plan/store.go
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/models"
)

const keyPrefix = "plan_summary_"

func storeKey(id string) string {
	return keyPrefix + id
}

// Store keeps plans for the life of a planning session.
type Store interface {
	Save(ctx context.Context, plan models.PlanSummary) error
	Get(ctx context.Context, id string) (models.PlanSummary, error)
}

// RedisStore expires plans after ttl.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, plan models.PlanSummary) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return apperrors.NewPlanStoreFailedError(err)
	}
	if err := s.client.Set(ctx, storeKey(plan.ID), raw, s.ttl).Err(); err != nil {
		return apperrors.NewPlanStoreFailedError(err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.PlanSummary, error) {
	raw, err := s.client.Get(ctx, storeKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.PlanSummary{}, apperrors.NewPlanNotFoundError(id)
	}
	if err != nil {
		return models.PlanSummary{}, apperrors.NewPlanStoreFailedError(err)
	}

	var plan models.PlanSummary
	if err := json.Unmarshal(raw, &plan); err != nil {
		return models.PlanSummary{}, apperrors.NewPlanStoreFailedError(fmt.Errorf("decode plan %s: %w", id, err))
	}
	return plan, nil
}

// MemoryStore is the single-process Store used by the CLI and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]models.PlanSummary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]models.PlanSummary)}
}

func (m *MemoryStore) Save(_ context.Context, plan models.PlanSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = plan
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (models.PlanSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	plan, ok := m.plans[id]
	if !ok {
		return models.PlanSummary{}, apperrors.NewPlanNotFoundError(id)
	}
	return plan, nil
}
