package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripplanhq/tripplan-backend/models"
)

const tripColumns = `id, user_id, title, summary, start_date, end_date, duration_days,
	origin_city, origin_lat, origin_lng, transport_mode, total_budget_estimate,
	currency, status, visibility, share_slug, created_at, updated_at`

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create inserts a trip, assigning its id and timestamps.
func (r *TripRepository) Create(trip *models.Trip) error {
	return r.CreateWithItems(trip, nil)
}

// CreateWithItems inserts a trip and its itinerary items in one
// transaction, so a clone either fully materializes or not at all.
func (r *TripRepository) CreateWithItems(trip *models.Trip, items []*models.ItineraryItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prepareTrip(trip)
	_, err = tx.Exec(
		`INSERT INTO trips (`+tripColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		trip.ID, trip.UserID, trip.Title, trip.Summary, trip.StartDate, trip.EndDate,
		trip.DurationDays, trip.OriginCity, trip.OriginLat, trip.OriginLng,
		trip.TransportMode, trip.TotalBudgetEstimate, trip.Currency, trip.Status,
		trip.Visibility, trip.ShareSlug, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for _, item := range items {
		item.TripID = trip.ID
		if err := insertItineraryItem(tx, item); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindByID returns the trip or nil when absent.
func (r *TripRepository) FindByID(id string) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Get(&trip, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// FindByUserID returns all trips owned by a user, newest first.
func (r *TripRepository) FindByUserID(userID string) ([]*models.Trip, error) {
	trips := []*models.Trip{}
	err := r.db.Select(&trips,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user trips: %w", err)
	}
	return trips, nil
}

// FindByShareSlug returns the trip carrying the slug or nil when absent.
func (r *TripRepository) FindByShareSlug(slug string) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Get(&trip, `SELECT `+tripColumns+` FROM trips WHERE share_slug = $1`, slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip by share slug: %w", err)
	}
	return &trip, nil
}

// Update applies a partial update. Unique-constraint violations (share
// slug collisions) are returned unwrapped so callers can classify them.
func (r *TripRepository) Update(id string, upd models.TripUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.DurationDays != nil {
		add("duration_days", *upd.DurationDays)
	}
	if upd.ClearOriginCity {
		set = append(set, "origin_city = NULL")
	} else if upd.OriginCity != nil {
		add("origin_city", *upd.OriginCity)
	}
	if upd.ClearOriginLat {
		set = append(set, "origin_lat = NULL")
	} else if upd.OriginLat != nil {
		add("origin_lat", *upd.OriginLat)
	}
	if upd.ClearOriginLng {
		set = append(set, "origin_lng = NULL")
	} else if upd.OriginLng != nil {
		add("origin_lng", *upd.OriginLng)
	}
	if upd.Visibility != nil {
		add("visibility", *upd.Visibility)
	}
	if upd.ShareSlug != nil {
		add("share_slug", *upd.ShareSlug)
	}
	if len(set) == 0 {
		return nil
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE trips SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	if _, err := r.db.Exec(query, args...); err != nil {
		return err
	}
	return nil
}

// Delete removes a trip; itinerary and budget rows cascade at the
// storage layer. Returns false when no row matched.
func (r *TripRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete trip: %w", err)
	}
	return n > 0, nil
}

func prepareTrip(trip *models.Trip) {
	now := time.Now().UTC()
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now
}
