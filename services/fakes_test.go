package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripplanhq/tripplan-backend/models"
)

// In-memory store fakes so service rules can be tested without Postgres.

type fakeTripStore struct {
	trips map[string]*models.Trip
	items *fakeItineraryStore

	// when set, Update returns this error once and clears it
	updateErr error
	updates   []models.TripUpdate
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{
		trips: map[string]*models.Trip{},
		items: newFakeItineraryStore(),
	}
}

func (s *fakeTripStore) Create(trip *models.Trip) error {
	return s.CreateWithItems(trip, nil)
}

func (s *fakeTripStore) CreateWithItems(trip *models.Trip, items []*models.ItineraryItem) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	trip.CreatedAt = time.Now().UTC()
	trip.UpdatedAt = trip.CreatedAt
	s.trips[trip.ID] = trip
	for _, item := range items {
		item.TripID = trip.ID
		if err := s.items.Create(item); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeTripStore) FindByID(id string) (*models.Trip, error) {
	return s.trips[id], nil
}

func (s *fakeTripStore) FindByUserID(userID string) ([]*models.Trip, error) {
	var out []*models.Trip
	for _, trip := range s.trips {
		if trip.UserID != nil && *trip.UserID == userID {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (s *fakeTripStore) FindByShareSlug(slug string) (*models.Trip, error) {
	for _, trip := range s.trips {
		if trip.ShareSlug != nil && *trip.ShareSlug == slug {
			return trip, nil
		}
	}
	return nil, nil
}

func (s *fakeTripStore) Update(id string, upd models.TripUpdate) error {
	s.updates = append(s.updates, upd)
	if s.updateErr != nil {
		err := s.updateErr
		s.updateErr = nil
		return err
	}
	trip, ok := s.trips[id]
	if !ok {
		return nil
	}
	if upd.Title != nil {
		trip.Title = *upd.Title
	}
	if upd.StartDate != nil {
		trip.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		trip.EndDate = *upd.EndDate
	}
	if upd.DurationDays != nil {
		trip.DurationDays = *upd.DurationDays
	}
	if upd.ClearOriginCity {
		trip.OriginCity = nil
	} else if upd.OriginCity != nil {
		trip.OriginCity = upd.OriginCity
	}
	if upd.ClearOriginLat {
		trip.OriginLat = nil
	} else if upd.OriginLat != nil {
		trip.OriginLat = upd.OriginLat
	}
	if upd.ClearOriginLng {
		trip.OriginLng = nil
	} else if upd.OriginLng != nil {
		trip.OriginLng = upd.OriginLng
	}
	if upd.Visibility != nil {
		trip.Visibility = *upd.Visibility
	}
	if upd.ShareSlug != nil {
		trip.ShareSlug = upd.ShareSlug
	}
	trip.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeTripStore) Delete(id string) (bool, error) {
	if _, ok := s.trips[id]; !ok {
		return false, nil
	}
	delete(s.trips, id)
	return true, nil
}

type fakeItineraryStore struct {
	items map[string]*models.ItineraryItem
}

func newFakeItineraryStore() *fakeItineraryStore {
	return &fakeItineraryStore{items: map[string]*models.ItineraryItem{}}
}

func (s *fakeItineraryStore) Create(item *models.ItineraryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	s.items[item.ID] = item
	return nil
}

func (s *fakeItineraryStore) FindByID(id string) (*models.ItineraryItem, error) {
	return s.items[id], nil
}

func (s *fakeItineraryStore) FindByTripID(tripID string) ([]*models.ItineraryItem, error) {
	var out []*models.ItineraryItem
	for _, item := range s.items {
		if item.TripID == tripID {
			out = append(out, item)
		}
	}
	// day then order, matching the repository's query
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].DayIndex < out[i].DayIndex ||
				(out[j].DayIndex == out[i].DayIndex && out[j].OrderIndex < out[i].OrderIndex) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (s *fakeItineraryStore) ReplaceForTrip(tripID string, items []*models.ItineraryItem) error {
	for id, item := range s.items {
		if item.TripID == tripID {
			delete(s.items, id)
		}
	}
	for _, item := range items {
		item.TripID = tripID
		if err := s.Create(item); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeItineraryStore) Update(id string, upd models.ItineraryItemUpdate) error {
	item, ok := s.items[id]
	if !ok {
		return nil
	}
	if upd.DayIndex != nil {
		item.DayIndex = *upd.DayIndex
	}
	if upd.OrderIndex != nil {
		item.OrderIndex = *upd.OrderIndex
	}
	if upd.ClearTitle {
		item.Title = nil
	} else if upd.Title != nil {
		item.Title = upd.Title
	}
	if upd.ClearDescription {
		item.Description = nil
	} else if upd.Description != nil {
		item.Description = upd.Description
	}
	if upd.ClearPlannedStartAt {
		item.PlannedStartAt = nil
	} else if upd.PlannedStartAt != nil {
		item.PlannedStartAt = upd.PlannedStartAt
	}
	if upd.ClearPlannedEndAt {
		item.PlannedEndAt = nil
	} else if upd.PlannedEndAt != nil {
		item.PlannedEndAt = upd.PlannedEndAt
	}
	if upd.ClearCostEstimate {
		item.CostEstimate = nil
	} else if upd.CostEstimate != nil {
		item.CostEstimate = upd.CostEstimate
	}
	item.UpdatedAt = time.Now().UTC()
	return nil
}

type fakePlaceStore struct {
	places map[string]*models.Place
}

func newFakePlaceStore() *fakePlaceStore {
	return &fakePlaceStore{places: map[string]*models.Place{}}
}

func (s *fakePlaceStore) FindByExternalRef(externalRef string) (*models.Place, error) {
	return s.places[externalRef], nil
}

func (s *fakePlaceStore) FindOrCreate(place *models.Place) (*models.Place, error) {
	if existing, ok := s.places[place.ExternalRef]; ok {
		return existing, nil
	}
	place.ID = uuid.NewString()
	place.UpdatedAt = time.Now().UTC()
	s.places[place.ExternalRef] = place
	return place, nil
}

type fakeBudgetStore struct {
	items map[string]*models.BudgetItem
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{items: map[string]*models.BudgetItem{}}
}

func (s *fakeBudgetStore) Create(item *models.BudgetItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	s.items[item.ID] = item
	return nil
}

func (s *fakeBudgetStore) FindByID(id string) (*models.BudgetItem, error) {
	return s.items[id], nil
}

func (s *fakeBudgetStore) FindByTripID(tripID string) ([]*models.BudgetItem, error) {
	var out []*models.BudgetItem
	for _, item := range s.items {
		if item.TripID == tripID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeBudgetStore) Update(id string, upd models.BudgetItemUpdate) error {
	item, ok := s.items[id]
	if !ok {
		return nil
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Title != nil {
		item.Title = *upd.Title
	}
	if upd.Quantity != nil {
		item.Quantity = *upd.Quantity
	}
	if upd.UnitPrice != nil {
		item.UnitPrice = *upd.UnitPrice
	}
	if upd.Currency != nil {
		item.Currency = *upd.Currency
	}
	if upd.Source != nil {
		item.Source = *upd.Source
	}
	if upd.ClearLinkedItineraryItemID {
		item.LinkedItineraryItemID = nil
	} else if upd.LinkedItineraryItemID != nil {
		item.LinkedItineraryItemID = upd.LinkedItineraryItemID
	}
	item.UpdatedAt = time.Now().UTC()
	return nil
}

type fakeRouteCacheStore struct {
	rows map[string]*models.RouteCache
}

func newFakeRouteCacheStore() *fakeRouteCacheStore {
	return &fakeRouteCacheStore{rows: map[string]*models.RouteCache{}}
}

func (s *fakeRouteCacheStore) FindByTripID(tripID string) (*models.RouteCache, error) {
	return s.rows[tripID], nil
}

func (s *fakeRouteCacheStore) Upsert(rc *models.RouteCache) error {
	s.rows[rc.TripID] = rc
	return nil
}

func (s *fakeRouteCacheStore) DeleteByTripID(tripID string) error {
	delete(s.rows, tripID)
	return nil
}

func (s *fakeRouteCacheStore) DeleteOlderThan(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	var dropped int64
	for id, rc := range s.rows {
		if rc.FetchedAt.Before(cutoff) {
			delete(s.rows, id)
			dropped++
		}
	}
	return dropped, nil
}
