// internal/analysis/prompt.go
package analysis

import (
	"fmt"
	"strings"

	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/format"
)

const rubric = `SCORING RUBRIC (each dimension 0-100):
- locationIntelligence: connectivity, transport hubs, proximity to business districts
- capacityOptimization: fit between venue capacity and attendee count, breakout space
- budgetEfficiency: total cost against budget, value for the price band
- technicalReadiness: WiFi, AV, on-site technical support
- serviceQuality: guest rating, catering, staff reliability
- seasonalFactors: weather and seasonal demand on the event dates
- industryAlignment: suitability of the venue type for the event type
- riskMitigation: availability, booking flexibility, parking and access risks
overallScore is the weighted judgement across all dimensions.
successProbability and riskLevel are one of "Low", "Medium", "High".
confidenceLevel (0-100) is how sure you are of the assessment.`

const responseShape = `{
  "overallScore": number,
  "successProbability": "Low" | "Medium" | "High",
  "riskLevel": "Low" | "Medium" | "High",
  "analysis": {
    "locationIntelligence": {"score": number, "insight": "string"},
    "capacityOptimization": {"score": number, "insight": "string"},
    "budgetEfficiency": {"score": number, "insight": "string"},
    "technicalReadiness": {"score": number, "insight": "string"},
    "serviceQuality": {"score": number, "insight": "string"},
    "seasonalFactors": {"score": number, "insight": "string"},
    "industryAlignment": {"score": number, "insight": "string"},
    "riskMitigation": {"score": number, "insight": "string"}
  },
  "keyStrengths": ["string"],
  "potentialRisks": ["string"],
  "optimizationSuggestions": ["string"],
  "alternativeOptions": [{"suggestion": "string", "impact": "string", "scoreImprovement": number}],
  "confidenceLevel": number
}`

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orNone(list []string) string {
	if len(list) == 0 {
		return "None"
	}
	return strings.Join(list, ", ")
}

// BuildPrompt renders the analysis request for one venue.
func BuildPrompt(venue models.Venue, req models.EventRequirement) string {
	var b strings.Builder

	b.WriteString("You are an expert corporate event analyst for Indian venues. ")
	b.WriteString("Assess how well the venue below suits the event and answer with JSON only.\n\n")

	b.WriteString("EVENT REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Event Type: %s\n", req.EventType)
	fmt.Fprintf(&b, "- City: %s\n", req.City)
	fmt.Fprintf(&b, "- Attendees: %d\n", req.AttendeeCount)
	fmt.Fprintf(&b, "- Budget: %s\n", format.INR(req.BudgetTotal))
	if req.PreferredVenueType != "" {
		fmt.Fprintf(&b, "- Preferred Setting: %s\n", req.PreferredVenueType)
	}
	if req.DateRange != nil {
		fmt.Fprintf(&b, "- Dates: %s to %s\n", req.DateRange.Start.Format("2006-01-02"), req.DateRange.End.Format("2006-01-02"))
	}
	if req.Flags.ParkingRequired {
		b.WriteString("- Parking required\n")
	}
	if req.Flags.WheelchairRequired {
		b.WriteString("- Wheelchair access required\n")
	}

	b.WriteString("\nVENUE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", venue.Name)
	fmt.Fprintf(&b, "- City: %s\n", venue.City)
	fmt.Fprintf(&b, "- Venue Type: %s\n", venue.VenueType)
	fmt.Fprintf(&b, "- Capacity: %d guests\n", venue.Capacity)
	fmt.Fprintf(&b, "- Price per Person: ₹%s\n", format.Grouped(venue.PricePerPerson))
	fmt.Fprintf(&b, "- Total Cost: %s\n", format.INR(venue.TotalCost(req.AttendeeCount)))
	fmt.Fprintf(&b, "- Rating: %s/5.0\n", format.Rating(venue.Rating))
	fmt.Fprintf(&b, "- Availability: %s\n", venue.AvailabilityStatus)
	fmt.Fprintf(&b, "- WiFi: %s\n", yesNo(venue.WifiAvailable))
	fmt.Fprintf(&b, "- AC: %s\n", yesNo(venue.ACAvailable))
	fmt.Fprintf(&b, "- Catering: %s\n", yesNo(venue.CateringAvailable))
	if venue.ParkingCapacity > 0 {
		fmt.Fprintf(&b, "- Parking: %d spaces\n", venue.ParkingCapacity)
	} else {
		b.WriteString("- Parking: No\n")
	}
	fmt.Fprintf(&b, "- Amenities: %s\n", orNone(venue.Tags()))
	if venue.Contact != nil {
		fmt.Fprintf(&b, "- Contact: %s | %s\n", venue.Contact.Phone, venue.Contact.Email)
	}
	if venue.Address != "" {
		fmt.Fprintf(&b, "- Address: %s\n", venue.Address)
	}

	b.WriteString("\n")
	b.WriteString(rubric)
	b.WriteString("\n\nRESPONSE FORMAT (return ONLY this JSON object):\n")
	b.WriteString(responseShape)
	b.WriteString("\n")

	return b.String()
}
