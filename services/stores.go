package services

import (
	"time"

	"github.com/tripplanhq/tripplan-backend/models"
)

// Store interfaces decouple services from the concrete repositories so
// business rules can be exercised without a database.

// TripStore persists trips.
type TripStore interface {
	Create(trip *models.Trip) error
	CreateWithItems(trip *models.Trip, items []*models.ItineraryItem) error
	FindByID(id string) (*models.Trip, error)
	FindByUserID(userID string) ([]*models.Trip, error)
	FindByShareSlug(slug string) (*models.Trip, error)
	Update(id string, upd models.TripUpdate) error
	Delete(id string) (bool, error)
}

// ItineraryStore persists itinerary items.
type ItineraryStore interface {
	Create(item *models.ItineraryItem) error
	FindByID(id string) (*models.ItineraryItem, error)
	FindByTripID(tripID string) ([]*models.ItineraryItem, error)
	ReplaceForTrip(tripID string, items []*models.ItineraryItem) error
	Update(id string, upd models.ItineraryItemUpdate) error
}

// PlaceStore persists the global place catalog.
type PlaceStore interface {
	FindByExternalRef(externalRef string) (*models.Place, error)
	FindOrCreate(place *models.Place) (*models.Place, error)
}

// BudgetStore persists budget items.
type BudgetStore interface {
	Create(item *models.BudgetItem) error
	FindByID(id string) (*models.BudgetItem, error)
	FindByTripID(tripID string) ([]*models.BudgetItem, error)
	Update(id string, upd models.BudgetItemUpdate) error
}

// RouteCacheStore persists memoized routing responses.
type RouteCacheStore interface {
	FindByTripID(tripID string) (*models.RouteCache, error)
	Upsert(rc *models.RouteCache) error
	DeleteByTripID(tripID string) error
	DeleteOlderThan(maxAge time.Duration) (int64, error)
}
