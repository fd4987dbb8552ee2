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

const itineraryColumns = `id, trip_id, place_id, day_index, order_index, title, description,
	planned_start_at, planned_end_at, transport_segment, cost_estimate,
	snapshot_lat, snapshot_lng, snapshot_place_name, snapshot_address,
	created_at, updated_at`

// ItineraryRepository handles database operations for itinerary items
type ItineraryRepository struct {
	db *sqlx.DB
}

// NewItineraryRepository creates a new ItineraryRepository
func NewItineraryRepository(db *sqlx.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Create inserts an itinerary item, assigning its id and timestamps.
func (r *ItineraryRepository) Create(item *models.ItineraryItem) error {
	return insertItineraryItem(r.db, item)
}

// FindByID returns the item or nil when absent.
func (r *ItineraryRepository) FindByID(id string) (*models.ItineraryItem, error) {
	var item models.ItineraryItem
	err := r.db.Get(&item,
		`SELECT `+itineraryColumns+` FROM itinerary_items WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary item: %w", err)
	}
	return &item, nil
}

// FindByTripID returns a trip's items in day then order sequence.
func (r *ItineraryRepository) FindByTripID(tripID string) ([]*models.ItineraryItem, error) {
	items := []*models.ItineraryItem{}
	err := r.db.Select(&items,
		`SELECT `+itineraryColumns+` FROM itinerary_items
		 WHERE trip_id = $1 ORDER BY day_index ASC, order_index ASC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary items: %w", err)
	}
	return items, nil
}

// ReplaceForTrip swaps the trip's entire itinerary for the given set.
// Delete and inserts run in one transaction so a failure cannot leave the
// trip with a partial itinerary.
func (r *ItineraryRepository) ReplaceForTrip(tripID string, items []*models.ItineraryItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM itinerary_items WHERE trip_id = $1`, tripID); err != nil {
		return fmt.Errorf("failed to clear itinerary: %w", err)
	}

	for _, item := range items {
		item.TripID = tripID
		if err := insertItineraryItem(tx, item); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update applies a partial update to an item.
func (r *ItineraryRepository) Update(id string, upd models.ItineraryItemUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.DayIndex != nil {
		add("day_index", *upd.DayIndex)
	}
	if upd.OrderIndex != nil {
		add("order_index", *upd.OrderIndex)
	}
	if upd.ClearTitle {
		set = append(set, "title = NULL")
	} else if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.ClearDescription {
		set = append(set, "description = NULL")
	} else if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.ClearPlannedStartAt {
		set = append(set, "planned_start_at = NULL")
	} else if upd.PlannedStartAt != nil {
		add("planned_start_at", *upd.PlannedStartAt)
	}
	if upd.ClearPlannedEndAt {
		set = append(set, "planned_end_at = NULL")
	} else if upd.PlannedEndAt != nil {
		add("planned_end_at", *upd.PlannedEndAt)
	}
	if upd.ClearCostEstimate {
		set = append(set, "cost_estimate = NULL")
	} else if upd.CostEstimate != nil {
		add("cost_estimate", *upd.CostEstimate)
	}
	if len(set) == 0 {
		return nil
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE itinerary_items SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args))
	if _, err := r.db.Exec(query, args...); err != nil {
		return err
	}
	return nil
}

// insertItineraryItem runs against either the pool or an open transaction.
func insertItineraryItem(e sqlx.Ext, item *models.ItineraryItem) error {
	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := e.Exec(
		`INSERT INTO itinerary_items (`+itineraryColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		item.ID, item.TripID, item.PlaceID, item.DayIndex, item.OrderIndex,
		item.Title, item.Description, item.PlannedStartAt, item.PlannedEndAt,
		item.TransportSegment, item.CostEstimate, item.SnapshotLat, item.SnapshotLng,
		item.SnapshotPlaceName, item.SnapshotAddress, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert itinerary item: %w", err)
	}
	return nil
}
