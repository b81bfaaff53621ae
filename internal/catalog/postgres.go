// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"venue-intelligence/internal/models"
)

const venuesQuery = `
SELECT id, name, city, capacity, price_per_person, venue_type,
       amenities, enhanced_amenities, rating, availability_status,
       wifi_available, ac_available, catering_available, parking_capacity,
       contact_phone, contact_email, address, description, image_url
FROM venues
WHERE city ILIKE $1 AND capacity >= $2
ORDER BY rating DESC, id
LIMIT $3`

// PostgresSource reads the venues table.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (p *PostgresSource) Name() string { return SourcePostgres }

func (p *PostgresSource) Venues(ctx context.Context, q Query) ([]models.Venue, error) {
	rows, err := p.db.QueryContext(ctx, venuesQuery, "%"+q.City+"%", q.MinCapacity, q.limit())
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	venues := make([]models.Venue, 0, q.limit())
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return venues, nil
}

func scanVenue(rows *sql.Rows) (models.Venue, error) {
	var (
		v                                models.Venue
		status                           string
		phone, email, addr, desc, imgURL sql.NullString
	)

	err := rows.Scan(
		&v.ID, &v.Name, &v.City, &v.Capacity, &v.PricePerPerson, &v.VenueType,
		pq.Array(&v.Amenities), pq.Array(&v.EnhancedAmenities), &v.Rating, &status,
		&v.WifiAvailable, &v.ACAvailable, &v.CateringAvailable, &v.ParkingCapacity,
		&phone, &email, &addr, &desc, &imgURL,
	)
	if err != nil {
		return models.Venue{}, fmt.Errorf("scan venue: %w", err)
	}

	v.AvailabilityStatus = models.AvailabilityStatus(status)
	if phone.Valid || email.Valid {
		v.Contact = &models.Contact{Phone: phone.String, Email: email.String}
	}
	v.Address = addr.String
	v.Description = desc.String
	v.ImageURL = imgURL.String
	return v, nil
}
