package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the DDL for the five service tables. Statements are idempotent
// so boot-time application is safe on an already-migrated database.
const schema = `
CREATE TABLE IF NOT EXISTS trips (
    id UUID PRIMARY KEY,
    user_id UUID,
    title VARCHAR(255) NOT NULL,
    summary TEXT,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    duration_days INTEGER NOT NULL,
    origin_city VARCHAR(255),
    origin_lat DECIMAL(9,6),
    origin_lng DECIMAL(9,6),
    transport_mode VARCHAR(16) NOT NULL,
    total_budget_estimate DECIMAL(10,2),
    currency CHAR(3) NOT NULL DEFAULT 'USD',
    status VARCHAR(8) NOT NULL DEFAULT 'draft',
    visibility VARCHAR(16) NOT NULL DEFAULT 'private',
    share_slug VARCHAR(100) UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT trips_date_range CHECK (end_date >= start_date)
);

CREATE TABLE IF NOT EXISTS places (
    id UUID PRIMARY KEY,
    external_ref VARCHAR(255) NOT NULL UNIQUE,
    name VARCHAR(255) NOT NULL,
    lat DECIMAL(9,6) NOT NULL,
    lng DECIMAL(9,6) NOT NULL,
    address TEXT,
    categories JSONB,
    rating DECIMAL(2,1),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS itinerary_items (
    id UUID PRIMARY KEY,
    trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    place_id UUID REFERENCES places(id) ON DELETE SET NULL,
    day_index INTEGER NOT NULL,
    order_index INTEGER NOT NULL,
    title VARCHAR(255),
    description TEXT,
    planned_start_at TIMESTAMPTZ,
    planned_end_at TIMESTAMPTZ,
    transport_segment JSONB,
    cost_estimate DECIMAL(10,2),
    snapshot_lat DECIMAL(9,6) NOT NULL,
    snapshot_lng DECIMAL(9,6) NOT NULL,
    snapshot_place_name TEXT,
    snapshot_address TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT itinerary_items_trip_day_order UNIQUE (trip_id, day_index, order_index)
);

CREATE TABLE IF NOT EXISTS budget_items (
    id UUID PRIMARY KEY,
    trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    category VARCHAR(16) NOT NULL,
    title VARCHAR(255) NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 1,
    unit_price DECIMAL(10,2) NOT NULL,
    currency CHAR(3) NOT NULL,
    source VARCHAR(16) NOT NULL,
    linked_itinerary_item_id UUID REFERENCES itinerary_items(id) ON DELETE SET NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS budget_items_trip_idx ON budget_items (trip_id);
CREATE INDEX IF NOT EXISTS budget_items_trip_category_idx ON budget_items (trip_id, category);

CREATE TABLE IF NOT EXISTS route_cache (
    trip_id UUID PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
    provider VARCHAR(16) NOT NULL DEFAULT 'google',
    request_sig TEXT NOT NULL UNIQUE,
    encoded_polyline TEXT NOT NULL,
    bounds JSONB NOT NULL,
    legs JSONB NOT NULL,
    distance_m INTEGER NOT NULL,
    duration_s INTEGER NOT NULL,
    fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema applies the service schema.
func InitSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
