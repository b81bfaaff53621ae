// internal/plan/builder.go

// Package plan turns a chosen venue into a shareable event plan.
package plan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/format"
)

// Fixed extras in whole rupees.
const (
	CateringPerPerson   = 1400
	AVEquipmentCost     = 85000
	PhotographyCost     = 45000
	MiscellaneousCost   = 30000
	DefaultShareBaseURL = "https://planera.example.com/plan-summary"
)

// DefaultSchedule is the one-day agenda every plan starts from.
func DefaultSchedule() []models.ScheduleItem {
	return []models.ScheduleItem{
		{Time: "09:00", Activity: "Registration & Welcome Coffee"},
		{Time: "10:00", Activity: "Opening Keynote Address"},
		{Time: "11:30", Activity: "Networking Break"},
		{Time: "12:00", Activity: "Panel Discussion"},
		{Time: "13:00", Activity: "Lunch Break"},
		{Time: "14:30", Activity: "Workshop Sessions"},
		{Time: "16:00", Activity: "Q&A Session"},
		{Time: "17:00", Activity: "Closing Remarks"},
	}
}

type Builder struct {
	shareBaseURL string
	now          func() time.Time
	newID        func() string
}

type BuilderOption func(*Builder)

func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

func WithIDs(newID func() string) BuilderOption {
	return func(b *Builder) { b.newID = newID }
}

func NewBuilder(shareBaseURL string, opts ...BuilderOption) *Builder {
	if shareBaseURL == "" {
		shareBaseURL = DefaultShareBaseURL
	}
	b := &Builder{
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the plan for venue. The requirement must be valid.
func (b *Builder) Build(venue models.Venue, req models.EventRequirement) (models.PlanSummary, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return models.PlanSummary{}, err
	}
	venue, _ = venue.Sanitized()

	budget := BudgetItems(venue, req.AttendeeCount)
	var total int64
	for _, item := range budget {
		total += item.Amount
	}

	id := b.newID()
	return models.PlanSummary{
		ID:                   id,
		Venue:                Summarize(venue),
		Requirement:          req,
		Schedule:             DefaultSchedule(),
		Budget:               budget,
		TotalCost:            total,
		BudgetUtilizationPct: utilization(total, req.BudgetTotal),
		ShareURL:             b.shareBaseURL + "/" + id,
		CreatedAt:            b.now().UTC(),
	}, nil
}

// Summarize keeps the venue fields a plan shows.
func Summarize(v models.Venue) models.VenueSummary {
	return models.VenueSummary{
		ID:             v.ID,
		Name:           v.Name,
		City:           v.City,
		Address:        v.Address,
		VenueType:      v.VenueType,
		Capacity:       v.Capacity,
		PricePerPerson: v.PricePerPerson,
		PriceLabel:     "₹" + format.Grouped(v.PricePerPerson) + " / person",
		Rating:         v.Rating,
		ImageURL:       v.ImageURL,
	}
}

func item(name string, amount int64, notes string) models.BudgetItem {
	return models.BudgetItem{Item: name, Amount: amount, Formatted: format.INR(amount), Notes: notes}
}

// BudgetItems is the cost breakdown for a venue and party size.
func BudgetItems(v models.Venue, attendees int) []models.BudgetItem {
	items := []models.BudgetItem{
		item(fmt.Sprintf("Venue (%d guests)", attendees), v.TotalCost(attendees),
			fmt.Sprintf("₹%s per person, including basic setup", format.Grouped(v.PricePerPerson))),
	}

	if v.CateringAvailable {
		items = append(items, item(fmt.Sprintf("Catering (%d attendees)", attendees), 0, "Provided by the venue"))
	} else {
		items = append(items, item(fmt.Sprintf("Catering (%d attendees)", attendees),
			int64(attendees)*CateringPerPerson, "Breakfast, lunch, snacks"))
	}

	return append(items,
		item("AV Equipment", AVEquipmentCost, "Projectors, mics, lighting"),
		item("Photography", PhotographyCost, "Event documentation"),
		item("Miscellaneous", MiscellaneousCost, "Decorations, materials"),
	)
}

// utilization is total/budget as a percentage with one decimal.
func utilization(total, budget int64) float64 {
	if budget <= 0 {
		return 0
	}
	return math.Round(float64(total)*1000/float64(budget)) / 10
}
