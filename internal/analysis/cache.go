// internal/analysis/cache.go
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"venue-intelligence/internal/models"
)

const cacheKeyPrefix = "venue_analysis_"

// CacheKey is the per-venue cache key.
func CacheKey(venueID string) string {
	return cacheKeyPrefix + venueID
}

// Entry is what gets cached: the analysis plus the epoch-millisecond time it
// was produced.
type Entry struct {
	Analysis  models.AIAnalysisResult `json:"analysis"`
	Timestamp int64                   `json:"timestamp"`
}

// Fresh reports whether the entry is younger than ttl at now.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-e.Timestamp < ttl.Milliseconds()
}

// Store persists analysis entries. Get reports ok=false on a miss.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry) error
}

// MemoryStore keeps entries for the life of the process. Entries are copied
// in and out so callers never alias the cached maps and slices.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	e.Analysis = e.Analysis.Clone()
	return e, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.Analysis = entry.Analysis.Clone()
	m.entries[key] = entry
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RedisStore shares entries between workers. Freshness is still judged by
// the entry timestamp; expiration only bounds how long Redis keeps the key.
type RedisStore struct {
	client     redis.Cmdable
	expiration time.Duration
}

func NewRedisStore(client redis.Cmdable, expiration time.Duration) *RedisStore {
	return &RedisStore{client: client, expiration: expiration}
}

func (r *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cached analysis %s: %w", key, err)
	}
	return e, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, r.expiration).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
