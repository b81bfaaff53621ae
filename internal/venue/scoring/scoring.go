// Package scoring turns an event requirement and a venue into a heuristic score,
// an ordered list of matched feature labels and a reasoning paragraph.
package scoring

import (
	"math"
	"strconv"
	"strings"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/format"
)

// Feature labels. Reasoning clauses key off these.
const (
	LabelPerfectCapacity  = "Perfect capacity match"
	LabelGoodCapacity     = "Good capacity match"
	LabelAcceptable       = "Acceptable capacity"
	LabelCapacityMismatch = "Capacity mismatch"

	LabelWithinBudget      = "Within budget"
	LabelSlightlyOver      = "Slightly over budget"
	LabelModeratelyOver    = "Moderately over budget"
	LabelSignificantlyOver = "Significantly over budget"

	LabelWifi     = "Free WiFi"
	LabelAC       = "Air Conditioning"
	LabelCatering = "Catering Services"

	LabelExcellentRating = "Excellent rating"
	LabelGoodRating      = "Good rating"
	LabelAverageRating   = "Average rating"
	LabelLowRating       = "Low rating"

	LabelAvailable   = "Available"
	LabelMaintenance = "Under maintenance"
	LabelBooked      = "Booked"

	LabelSameCity = "Same city"
)

type affinity struct {
	eventType  string
	venueTypes []string
	points     float64
	label      string
}

// affinities is evaluated top to bottom; the first match wins.
var affinities = []affinity{
	{"corporate", []string{models.VenueTypeHotel}, 30, "Perfect for corporate events"},
	{"conference", []string{models.VenueTypeConventionCenter}, 30, "Ideal for conferences"},
	{"wedding", []string{models.VenueTypeHotel, models.VenueTypeBanquetHall}, 25, "Great for weddings"},
	{"exhibition", []string{models.VenueTypeConventionCenter}, 25, "Perfect for exhibitions"},
}

type enhancedAmenity struct {
	tag    string
	points float64
	label  string
}

var enhancedAmenities = []enhancedAmenity{
	{"spa_access", 10, "Spa Access"},
	{"pool_access", 8, "Pool Access"},
	{"business_center", 12, "Business Center"},
	{"exhibition_space", 15, "Exhibition Space"},
	{"heritage_ambiance", 15, "Heritage Ambiance"},
}

const heritageTag = "heritage_ambiance"

// Scorer evaluates venues. The zero value is not usable; build one with NewScorer.
type Scorer struct {
	logger logger.Logger
}

func NewScorer(log logger.Logger) *Scorer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Scorer{logger: log.WithFields(map[string]interface{}{"component": "scoring"})}
}

var defaultScorer = NewScorer(nil)

// Score scores a venue with a scorer that discards data-integrity warnings.
func Score(req models.EventRequirement, venue models.Venue) (models.ScoredVenue, error) {
	return defaultScorer.Score(req, venue)
}

// CheckPreconditions rejects requirements that cannot be scored.
func CheckPreconditions(req models.EventRequirement) error {
	var problems []string
	if req.AttendeeCount <= 0 {
		problems = append(problems, "attendeeCount must be positive")
	}
	if req.BudgetTotal <= 0 {
		problems = append(problems, "budgetTotal must be positive")
	}
	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}

// Score is deterministic: identical inputs yield identical output.
func (s *Scorer) Score(req models.EventRequirement, venue models.Venue) (models.ScoredVenue, error) {
	if err := CheckPreconditions(req); err != nil {
		return models.ScoredVenue{}, err
	}

	venue = s.sanitize(venue)

	var (
		score    float64
		features []string
	)
	add := func(points float64, label string) {
		score += points
		features = append(features, label)
	}

	// Tier bounds are inclusive percentages; compare in integers so that
	// 110% of a budget is exactly 110.
	attendees := int64(req.AttendeeCount)
	diff := int64(venue.Capacity) - attendees
	if diff < 0 {
		diff = -diff
	}
	if atMostPct(diff, attendees, 10) {
		add(50, LabelPerfectCapacity)
	} else if atMostPct(diff, attendees, 25) {
		add(30, LabelGoodCapacity)
	} else if atMostPct(diff, attendees, 50) {
		add(10, LabelAcceptable)
	} else {
		add(-20, LabelCapacityMismatch)
	}

	cost := venue.TotalCost(req.AttendeeCount)
	if atMostPct(cost, req.BudgetTotal, 100) {
		add(40, LabelWithinBudget)
	} else if atMostPct(cost, req.BudgetTotal, 110) {
		add(20, LabelSlightlyOver)
	} else if atMostPct(cost, req.BudgetTotal, 125) {
		add(5, LabelModeratelyOver)
	} else {
		add(-30, LabelSignificantlyOver)
	}

	if a, ok := matchAffinity(string(req.EventType), venue.VenueType); ok {
		add(a.points, a.label)
	}

	if venue.WifiAvailable {
		add(20, LabelWifi)
	}
	if venue.ACAvailable {
		add(15, LabelAC)
	}
	if venue.CateringAvailable {
		add(25, LabelCatering)
	}
	if venue.ParkingCapacity > 0 {
		add(math.Min(30, float64(venue.ParkingCapacity)/10), strconv.Itoa(venue.ParkingCapacity)+" parking spaces")
	}
	for _, ea := range enhancedAmenities {
		if venue.HasTag(ea.tag) {
			add(ea.points, ea.label)
		}
	}

	if venue.Rating >= 4.5 {
		add(25, LabelExcellentRating)
	} else if venue.Rating >= 4.0 {
		add(15, LabelGoodRating)
	} else if venue.Rating >= 3.5 {
		add(5, LabelAverageRating)
	} else {
		add(-10, LabelLowRating)
	}

	switch venue.AvailabilityStatus {
	case models.AvailabilityAvailable:
		add(20, LabelAvailable)
	case models.AvailabilityMaintenance:
		add(-50, LabelMaintenance)
	case models.AvailabilityBooked:
		add(-100, LabelBooked)
	}

	if strings.EqualFold(strings.TrimSpace(venue.City), strings.TrimSpace(req.City)) {
		add(30, LabelSameCity)
	}

	return models.ScoredVenue{
		Venue:           venue,
		Score:           score,
		MatchedFeatures: features,
		Reasoning:       Reasoning(req, venue, features),
	}, nil
}

func (s *Scorer) sanitize(venue models.Venue) models.Venue {
	clean, warnings := venue.Sanitized()
	for _, w := range warnings {
		s.logger.Warn("venue field clamped", map[string]interface{}{
			"code":    string(w.Code),
			"venueId": venue.ID,
			"details": w.Details,
		})
	}
	return clean
}

// atMostPct reports whether part/whole*100 <= pct.
func atMostPct(part, whole, pct int64) bool {
	return part*100 <= whole*pct
}

func matchAffinity(eventType, venueType string) (affinity, bool) {
	et := strings.ToLower(strings.TrimSpace(eventType))
	vt := strings.ToLower(strings.TrimSpace(venueType))
	for _, a := range affinities {
		if a.eventType != et {
			continue
		}
		for _, t := range a.venueTypes {
			if t == vt {
				return a, true
			}
		}
	}
	return affinity{}, false
}

// Reasoning assembles the explanation paragraph from the matched features.
func Reasoning(req models.EventRequirement, venue models.Venue, features []string) string {
	has := func(label string) bool {
		for _, f := range features {
			if f == label {
				return true
			}
		}
		return false
	}

	var b strings.Builder
	b.WriteString("This " + venue.DisplayType() + " is highly recommended for your " + string(req.EventType) + " because ")

	guests := strconv.Itoa(req.AttendeeCount)
	if has(LabelPerfectCapacity) {
		b.WriteString("it perfectly accommodates your " + guests + " guests. ")
	} else if has(LabelGoodCapacity) {
		b.WriteString("it comfortably fits your " + guests + " guests. ")
	}
	if has(LabelWithinBudget) {
		b.WriteString("It's within your budget of ₹" + strconv.FormatInt(req.BudgetTotal, 10) + ". ")
	}
	if venue.CateringAvailable {
		b.WriteString("The venue provides excellent catering services. ")
	}
	if venue.WifiAvailable && venue.ACAvailable {
		b.WriteString("It offers modern amenities including WiFi and air conditioning. ")
	}
	if venue.Rating >= 4.5 {
		b.WriteString("With a " + format.Rating(venue.Rating) + " rating, it's highly rated by previous guests. ")
	}
	if venue.HasTag(heritageTag) {
		b.WriteString("The heritage ambiance adds a unique cultural touch to your event. ")
	}
	b.WriteString("Located in " + venue.City + ", it's easily accessible for your guests.")

	return b.String()
}
