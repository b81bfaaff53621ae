// Package filter evaluates venues against the multi-facet browse filters.
//
// Facets are AND-combined. Within venueTypes and availability any selected
// value matches (OR); within amenities every selected amenity must hold (AND).
package filter

import (
	"strings"

	"venue-intelligence/internal/models"
)

// Matches reports whether venue passes every facet of fs.
func Matches(venue models.Venue, fs models.FilterState) bool {
	if !anyOf(fs.VenueTypes, venue.VenueType) {
		return false
	}
	if !fs.PriceRange.Contains(venue.PricePerPerson) {
		return false
	}
	if !fs.CapacityRange.Contains(int64(venue.Capacity)) {
		return false
	}
	if !anyOf(fs.AvailabilityStatuses, string(venue.AvailabilityStatus)) {
		return false
	}
	for _, amenity := range fs.Amenities {
		if !HasAmenity(venue, amenity) {
			return false
		}
	}
	return true
}

// Apply returns the venues that match fs, in input order. The result is never
// nil so an empty match serialises as [].
func Apply(venues []models.Venue, fs models.FilterState) []models.Venue {
	out := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		if Matches(v, fs) {
			out = append(out, v)
		}
	}
	return out
}

// Cleared is the "clear filters" state: it matches every venue.
func Cleared() models.FilterState {
	return models.FilterState{}
}

// HasAmenity resolves one amenity. The shorthands wifi, parking, ac and
// catering read the dedicated venue fields; anything else is a tag lookup.
func HasAmenity(venue models.Venue, amenity string) bool {
	switch strings.ToLower(strings.TrimSpace(amenity)) {
	case models.AmenityWifi:
		return venue.WifiAvailable
	case models.AmenityParking:
		return venue.ParkingCapacity > 0
	case models.AmenityAC:
		return venue.ACAvailable
	case models.AmenityCatering:
		return venue.CateringAvailable
	}
	return venue.HasTag(strings.TrimSpace(amenity))
}

func anyOf(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if strings.EqualFold(strings.TrimSpace(s), value) {
			return true
		}
	}
	return false
}

// Options lists the facet values the browse page offers.
type Options struct {
	VenueTypes   []string `json:"venueTypes"`
	Amenities    []string `json:"amenities"`
	Availability []string `json:"availability"`
}

func FacetOptions() Options {
	return Options{
		VenueTypes: append([]string(nil), models.VenueTypes...),
		Amenities:  []string{models.AmenityWifi, models.AmenityParking, models.AmenityAC, models.AmenityCatering},
		Availability: []string{
			string(models.AvailabilityAvailable),
			string(models.AvailabilityBooked),
			string(models.AvailabilityMaintenance),
		},
	}
}
