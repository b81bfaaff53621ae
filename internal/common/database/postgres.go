// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"venue-intelligence/internal/common/config"
)

// VenuesSchema creates the catalog table read by catalog.PostgresSource.
const VenuesSchema = `
CREATE TABLE IF NOT EXISTS venues (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	city                TEXT NOT NULL,
	capacity            INTEGER NOT NULL DEFAULT 0,
	price_per_person    BIGINT NOT NULL DEFAULT 0,
	venue_type          TEXT NOT NULL DEFAULT '',
	amenities           TEXT[] NOT NULL DEFAULT '{}',
	enhanced_amenities  TEXT[] NOT NULL DEFAULT '{}',
	rating              NUMERIC(3,2) NOT NULL DEFAULT 0,
	availability_status TEXT NOT NULL DEFAULT 'available',
	wifi_available      BOOLEAN NOT NULL DEFAULT FALSE,
	ac_available        BOOLEAN NOT NULL DEFAULT FALSE,
	catering_available  BOOLEAN NOT NULL DEFAULT FALSE,
	parking_capacity    INTEGER NOT NULL DEFAULT 0,
	contact_phone       TEXT,
	contact_email       TEXT,
	address             TEXT,
	description         TEXT,
	image_url           TEXT
);
CREATE INDEX IF NOT EXISTS venues_city_capacity_idx ON venues (lower(city), capacity);
`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens the pool. No connection is made until first use.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// EnsureSchema creates the venues table if it is missing.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, VenuesSchema); err != nil {
		return fmt.Errorf("create venues schema: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
