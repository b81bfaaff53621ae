// internal/catalog/file.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"venue-intelligence/internal/models"
)

// FileSource serves a fixed venue list, typically loaded from a seed file,
// with an optional simulated latency.
type FileSource struct {
	venues  []models.Venue
	latency time.Duration
}

func NewFileSource(venues []models.Venue, latency time.Duration) *FileSource {
	return &FileSource{venues: append([]models.Venue(nil), venues...), latency: latency}
}

// LoadFile reads a JSON array of venues.
func LoadFile(path string, latency time.Duration) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	venues, err := DecodeVenues(raw)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return NewFileSource(venues, latency), nil
}

// DecodeVenues accepts either a JSON array of venues or {"venues": [...]}.
func DecodeVenues(raw []byte) ([]models.Venue, error) {
	var venues []models.Venue
	if err := json.Unmarshal(raw, &venues); err == nil {
		return venues, nil
	}

	var wrapped struct {
		Venues []models.Venue `json:"venues"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode venues: %w", err)
	}
	return wrapped.Venues, nil
}

func (f *FileSource) Name() string { return SourceFile }

func (f *FileSource) Venues(ctx context.Context, q Query) ([]models.Venue, error) {
	if f.latency > 0 {
		timer := time.NewTimer(f.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	city := strings.ToLower(strings.TrimSpace(q.City))
	out := make([]models.Venue, 0, len(f.venues))
	for _, v := range f.venues {
		if city != "" && !strings.Contains(strings.ToLower(v.City), city) {
			continue
		}
		if v.Capacity < q.MinCapacity {
			continue
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > q.limit() {
		out = out[:q.limit()]
	}
	return out, nil
}
