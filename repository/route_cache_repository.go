package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tripplanhq/tripplan-backend/models"
)

const routeCacheColumns = `trip_id, provider, request_sig, encoded_polyline, bounds, legs,
	distance_m, duration_s, fetched_at`

// RouteCacheRepository handles database operations for memoized routing
// responses. One row per trip, replaced whenever the request signature
// changes.
type RouteCacheRepository struct {
	db *sqlx.DB
}

// NewRouteCacheRepository creates a new RouteCacheRepository
func NewRouteCacheRepository(db *sqlx.DB) *RouteCacheRepository {
	return &RouteCacheRepository{db: db}
}

// FindByTripID returns the trip's cached route or nil when absent.
func (r *RouteCacheRepository) FindByTripID(tripID string) (*models.RouteCache, error) {
	var rc models.RouteCache
	err := r.db.Get(&rc,
		`SELECT `+routeCacheColumns+` FROM route_cache WHERE trip_id = $1`, tripID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route cache: %w", err)
	}
	return &rc, nil
}

// FindByRequestSig returns the cache row for a request signature or nil.
func (r *RouteCacheRepository) FindByRequestSig(requestSig string) (*models.RouteCache, error) {
	var rc models.RouteCache
	err := r.db.Get(&rc,
		`SELECT `+routeCacheColumns+` FROM route_cache WHERE request_sig = $1`, requestSig)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route cache: %w", err)
	}
	return &rc, nil
}

// Upsert stores a routing response for a trip, replacing any previous one.
func (r *RouteCacheRepository) Upsert(rc *models.RouteCache) error {
	if rc.Provider == "" {
		rc.Provider = "google"
	}
	if rc.FetchedAt.IsZero() {
		rc.FetchedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO route_cache (`+routeCacheColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (trip_id) DO UPDATE SET
		   provider = EXCLUDED.provider,
		   request_sig = EXCLUDED.request_sig,
		   encoded_polyline = EXCLUDED.encoded_polyline,
		   bounds = EXCLUDED.bounds,
		   legs = EXCLUDED.legs,
		   distance_m = EXCLUDED.distance_m,
		   duration_s = EXCLUDED.duration_s,
		   fetched_at = EXCLUDED.fetched_at`,
		rc.TripID, rc.Provider, rc.RequestSig, rc.EncodedPolyline, rc.Bounds,
		rc.Legs, rc.DistanceM, rc.DurationS, rc.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert route cache: %w", err)
	}
	return nil
}

// DeleteByTripID removes a trip's cached route.
func (r *RouteCacheRepository) DeleteByTripID(tripID string) error {
	if _, err := r.db.Exec(`DELETE FROM route_cache WHERE trip_id = $1`, tripID); err != nil {
		return fmt.Errorf("failed to delete route cache: %w", err)
	}
	return nil
}

// DeleteOlderThan removes rows fetched before now-maxAge and reports how
// many were dropped. Age-based cleanup, not an eviction policy.
func (r *RouteCacheRepository) DeleteOlderThan(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := r.db.Exec(`DELETE FROM route_cache WHERE fetched_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean route cache: %w", err)
	}
	return res.RowsAffected()
}
