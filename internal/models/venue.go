package models

import (
	"strings"

	apperrors "venue-intelligence/internal/common/errors"
)

const (
	VenueTypeHotel            = "hotel"
	VenueTypeConventionCenter = "convention_center"
	VenueTypeBanquetHall      = "banquet_hall"
	VenueTypeAuditorium       = "auditorium"
	VenueTypeOutdoor          = "outdoor"
	VenueTypeHeritage         = "heritage"
	VenueTypeResort           = "resort"
)

// VenueTypes lists the venue types offered as filter options.
var VenueTypes = []string{
	VenueTypeHotel,
	VenueTypeConventionCenter,
	VenueTypeBanquetHall,
	VenueTypeAuditorium,
	VenueTypeOutdoor,
	VenueTypeHeritage,
	VenueTypeResort,
}

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityBooked      AvailabilityStatus = "booked"
	AvailabilityMaintenance AvailabilityStatus = "maintenance"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Venue struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	City               string             `json:"city"`
	Capacity           int                `json:"capacity"`
	PricePerPerson     int64              `json:"pricePerPerson"`
	VenueType          string             `json:"venueType"`
	Amenities          []string           `json:"amenities,omitempty"`
	EnhancedAmenities  []string           `json:"enhancedAmenities,omitempty"`
	Rating             float64            `json:"rating"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus"`
	WifiAvailable      bool               `json:"wifiAvailable"`
	ACAvailable        bool               `json:"acAvailable"`
	CateringAvailable  bool               `json:"cateringAvailable"`
	ParkingCapacity    int                `json:"parkingCapacity"`
	Contact            *Contact           `json:"contact,omitempty"`
	Address            string             `json:"address,omitempty"`
	Description        string             `json:"description,omitempty"`
	ImageURL           string             `json:"imageUrl,omitempty"`
}

// TotalCost is the price for the whole party: pricePerPerson × attendees.
func (v Venue) TotalCost(attendees int) int64 {
	return v.PricePerPerson * int64(attendees)
}

// Tags is the union of both amenity lists, de-duplicated, in first-seen order.
func (v Venue) Tags() []string {
	seen := make(map[string]struct{}, len(v.Amenities)+len(v.EnhancedAmenities))
	out := make([]string, 0, len(v.Amenities)+len(v.EnhancedAmenities))
	for _, list := range [][]string{v.Amenities, v.EnhancedAmenities} {
		for _, tag := range list {
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// HasTag reports whether either amenity list carries tag, ignoring case.
func (v Venue) HasTag(tag string) bool {
	for _, list := range [][]string{v.Amenities, v.EnhancedAmenities} {
		for _, t := range list {
			if strings.EqualFold(strings.TrimSpace(t), tag) {
				return true
			}
		}
	}
	return false
}

// Sanitized returns a copy with out-of-range numeric fields clamped and one
// DATA_INTEGRITY_WARNING per clamped field.
func (v Venue) Sanitized() (Venue, []*apperrors.StandardError) {
	var warnings []*apperrors.StandardError

	if v.Rating < MinRating || v.Rating > MaxRating {
		clamped := v.Rating
		if clamped < MinRating {
			clamped = MinRating
		} else {
			clamped = MaxRating
		}
		warnings = append(warnings, apperrors.NewDataIntegrityWarning(v.ID, "rating", v.Rating, clamped))
		v.Rating = clamped
	}
	if v.ParkingCapacity < 0 {
		warnings = append(warnings, apperrors.NewDataIntegrityWarning(v.ID, "parkingCapacity", v.ParkingCapacity, 0))
		v.ParkingCapacity = 0
	}
	if v.Capacity < 0 {
		warnings = append(warnings, apperrors.NewDataIntegrityWarning(v.ID, "capacity", v.Capacity, 0))
		v.Capacity = 0
	}
	if v.PricePerPerson < 0 {
		warnings = append(warnings, apperrors.NewDataIntegrityWarning(v.ID, "pricePerPerson", v.PricePerPerson, 0))
		v.PricePerPerson = 0
	}

	return v, warnings
}

// DisplayType turns "convention_center" into "convention center".
func (v Venue) DisplayType() string {
	return strings.ReplaceAll(v.VenueType, "_", " ")
}
