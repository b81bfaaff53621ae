package models

import (
	"encoding/json"
	"fmt"
)

// Amenity shorthands backed by dedicated venue fields.
const (
	AmenityWifi     = "wifi"
	AmenityParking  = "parking"
	AmenityAC       = "ac"
	AmenityCatering = "catering"
)

// Range is an inclusive [Min, Max] bound. Max == 0 leaves the range open above.
type Range struct {
	Min int64
	Max int64
}

func (r Range) Contains(v int64) bool {
	if v < r.Min {
		return false
	}
	return r.Max == 0 || v <= r.Max
}

func (r Range) Unbounded() bool {
	return r.Min == 0 && r.Max == 0
}

// MarshalJSON encodes the range as the two-element array the UI slider uses.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{r.Min, r.Max})
}

// UnmarshalJSON accepts [min, max] or {"min": .., "max": ..}.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair []int64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("range must have exactly two bounds, got %d", len(pair))
		}
		r.Min, r.Max = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Min int64 `json:"min"`
		Max int64 `json:"max"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("range must be [min,max] or {min,max}: %w", err)
	}
	r.Min, r.Max = obj.Min, obj.Max
	return nil
}

type FilterState struct {
	VenueTypes           []string `json:"venueTypes,omitempty"`
	Amenities            []string `json:"amenities,omitempty"`
	AvailabilityStatuses []string `json:"availability,omitempty"`
	PriceRange           Range    `json:"priceRange"`
	CapacityRange        Range    `json:"capacityRange"`
}

// DefaultFilterState mirrors the slider positions the browse page opens with.
func DefaultFilterState() FilterState {
	return FilterState{
		PriceRange:    Range{Min: 2000, Max: 10000},
		CapacityRange: Range{Min: 50, Max: 1000},
	}
}

// Validate rejects inverted ranges.
func (f FilterState) Validate() error {
	if f.PriceRange.Max != 0 && f.PriceRange.Min > f.PriceRange.Max {
		return fmt.Errorf("priceRange min %d exceeds max %d", f.PriceRange.Min, f.PriceRange.Max)
	}
	if f.CapacityRange.Max != 0 && f.CapacityRange.Min > f.CapacityRange.Max {
		return fmt.Errorf("capacityRange min %d exceeds max %d", f.CapacityRange.Min, f.CapacityRange.Max)
	}
	if f.PriceRange.Min < 0 || f.CapacityRange.Min < 0 {
		return fmt.Errorf("range bounds must not be negative")
	}
	return nil
}

// IsEmpty reports whether no facet narrows the result.
func (f FilterState) IsEmpty() bool {
	return len(f.VenueTypes) == 0 && len(f.Amenities) == 0 && len(f.AvailabilityStatuses) == 0 &&
		f.PriceRange.Unbounded() && f.CapacityRange.Unbounded()
}
