package pagination

import (
	"context"
	"sync"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/filter"
)

// Window is an immutable view of what the browse page shows.
type Window struct {
	Items   []models.Venue     `json:"items"`
	Visible int                `json:"visible"`
	Total   int                `json:"total"`
	HasMore bool               `json:"hasMore"`
	Filters models.FilterState `json:"filters"`
}

// LoadFunc fetches the catalog for the browse page.
type LoadFunc func(ctx context.Context) ([]models.Venue, error)

// Browser couples the catalog, the active filters and the load-more window so
// that a filter change and its window reset land together.
type Browser struct {
	mu       sync.RWMutex
	venues   []models.Venue
	filters  models.FilterState
	filtered []models.Venue
	ctrl     *Controller
}

func NewBrowser(cfg Config, venues []models.Venue) *Browser {
	b := &Browser{ctrl: NewController(cfg)}
	b.replace(venues)
	return b
}

// Load fetches the catalog. Nothing changes if the fetch fails or ctx ends
// before it returns.
func (b *Browser) Load(ctx context.Context, load LoadFunc) (Window, error) {
	venues, err := load(ctx)
	if err != nil {
		return b.Window(), err
	}
	if err := ctx.Err(); err != nil {
		return b.Window(), err
	}

	b.mu.Lock()
	b.replace(venues)
	b.mu.Unlock()

	return b.Window(), nil
}

func (b *Browser) replace(venues []models.Venue) {
	b.venues = append([]models.Venue(nil), venues...)
	b.filtered = filter.Apply(b.venues, b.filters)
	b.ctrl.SetFilteredCount(len(b.filtered))
	b.ctrl.OnFilterChange()
}

// SetFilters recomputes the filtered set and resets the window.
func (b *Browser) SetFilters(fs models.FilterState) (Window, error) {
	if err := fs.Validate(); err != nil {
		return b.Window(), apperrors.NewInvalidFilterFormatError(err.Error())
	}

	b.mu.Lock()
	b.filters = fs
	b.filtered = filter.Apply(b.venues, fs)
	b.ctrl.SetFilteredCount(len(b.filtered))
	b.ctrl.OnFilterChange()
	b.mu.Unlock()

	return b.Window(), nil
}

// ClearFilters drops every facet.
func (b *Browser) ClearFilters() Window {
	w, _ := b.SetFilters(filter.Cleared())
	return w
}

func (b *Browser) LoadMore(ctx context.Context) (Window, error) {
	_, err := b.ctrl.LoadMore(ctx)
	return b.Window(), err
}

func (b *Browser) Window() Window {
	b.mu.RLock()
	defer b.mu.RUnlock()

	visible := b.ctrl.Visible()
	items := make([]models.Venue, visible)
	copy(items, b.filtered[:visible])

	return Window{
		Items:   items,
		Visible: visible,
		Total:   len(b.filtered),
		HasMore: visible < len(b.filtered),
		Filters: b.filters,
	}
}
