package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "venue-intelligence/internal/common/errors"
)

type EventType string

const (
	EventTypeConference    EventType = "Conference"
	EventTypeWorkshop      EventType = "Workshop"
	EventTypeOffsite       EventType = "Offsite"
	EventTypeTraining      EventType = "Training"
	EventTypeProductLaunch EventType = "Product Launch"
)

// KnownEventTypes are the event types offered by the planning form.
// Other values are accepted; they only matter for venue-type affinity.
var KnownEventTypes = []EventType{
	EventTypeConference,
	EventTypeWorkshop,
	EventTypeOffsite,
	EventTypeTraining,
	EventTypeProductLaunch,
}

type VenuePreference string

const (
	VenuePreferenceIndoor  VenuePreference = "Indoor"
	VenuePreferenceOutdoor VenuePreference = "Outdoor"
	VenuePreferenceEither  VenuePreference = "Either"
)

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days is the inclusive number of calendar days covered by the range.
func (d DateRange) Days() int {
	start := time.Date(d.Start.Year(), d.Start.Month(), d.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(d.End.Year(), d.End.Month(), d.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

type EventFlags struct {
	ParkingRequired    bool `json:"parkingRequired"`
	WheelchairRequired bool `json:"wheelchairRequired"`
}

// EventRequirement is what the planner asks for. BudgetTotal is in whole rupees.
type EventRequirement struct {
	City               string          `json:"city"`
	EventType          EventType       `json:"eventType"`
	AttendeeCount      int             `json:"attendeeCount"`
	BudgetTotal        int64           `json:"budgetTotal"`
	PreferredVenueType VenuePreference `json:"preferredVenueType,omitempty"`
	DateRange          *DateRange      `json:"dateRange,omitempty"`
	Flags              EventFlags      `json:"flags"`
}

// Validate reports every problem at once so the form can show them together.
func (r EventRequirement) Validate() error {
	var problems []string

	if strings.TrimSpace(r.City) == "" {
		problems = append(problems, "city is required")
	}
	if strings.TrimSpace(string(r.EventType)) == "" {
		problems = append(problems, "eventType is required")
	}
	if r.AttendeeCount <= 0 {
		problems = append(problems, "attendeeCount must be positive")
	}
	if r.BudgetTotal <= 0 {
		problems = append(problems, "budgetTotal must be positive")
	}
	switch r.PreferredVenueType {
	case "", VenuePreferenceIndoor, VenuePreferenceOutdoor, VenuePreferenceEither:
	default:
		problems = append(problems, fmt.Sprintf("preferredVenueType %q is not one of Indoor, Outdoor, Either", r.PreferredVenueType))
	}
	if r.DateRange != nil && r.DateRange.End.Before(r.DateRange.Start) {
		problems = append(problems, "dateRange.start must not be after dateRange.end")
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}

// Normalized trims free-text fields.
func (r EventRequirement) Normalized() EventRequirement {
	r.City = strings.TrimSpace(r.City)
	r.EventType = EventType(strings.TrimSpace(string(r.EventType)))
	if r.PreferredVenueType == "" {
		r.PreferredVenueType = VenuePreferenceEither
	}
	return r
}
