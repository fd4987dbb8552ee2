package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripplanhq/tripplan-backend/models"
)

const placeColumns = `id, external_ref, name, lat, lng, address, categories, rating, updated_at`

// PlaceRepository handles database operations for the global place catalog
type PlaceRepository struct {
	db *sqlx.DB
}

// NewPlaceRepository creates a new PlaceRepository
func NewPlaceRepository(db *sqlx.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// FindByExternalRef returns the place or nil when absent.
func (r *PlaceRepository) FindByExternalRef(externalRef string) (*models.Place, error) {
	var place models.Place
	err := r.db.Get(&place,
		`SELECT `+placeColumns+` FROM places WHERE external_ref = $1`, externalRef)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return &place, nil
}

// FindOrCreate reuses the catalog entry for the external reference when
// one exists, otherwise inserts the supplied one. Concurrent inserts of
// the same reference resolve to the winner's row.
func (r *PlaceRepository) FindOrCreate(place *models.Place) (*models.Place, error) {
	existing, err := r.FindByExternalRef(place.ExternalRef)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if place.ID == "" {
		place.ID = uuid.NewString()
	}
	place.UpdatedAt = time.Now().UTC()

	_, err = r.db.Exec(
		`INSERT INTO places (`+placeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (external_ref) DO NOTHING`,
		place.ID, place.ExternalRef, place.Name, place.Lat, place.Lng,
		place.Address, place.Categories, place.Rating, place.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert place: %w", err)
	}

	return r.FindByExternalRef(place.ExternalRef)
}
