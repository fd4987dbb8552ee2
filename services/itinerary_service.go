package services

import (
	"encoding/json"
	"strconv"

	"github.com/jmoiron/sqlx/types"

	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// ItineraryService manages a trip's itinerary: adding items against the
// place catalog, wholesale replacement, and single-item patches.
type ItineraryService struct {
	trips  TripStore
	items  ItineraryStore
	places PlaceStore
}

// NewItineraryService creates a new ItineraryService
func NewItineraryService(trips TripStore, items ItineraryStore, places PlaceStore) *ItineraryService {
	return &ItineraryService{trips: trips, items: items, places: places}
}

// AddItem resolves the place through the catalog (find-or-create by
// external reference) and inserts an item snapshotting the place's
// name, address, and coordinates at add time.
func (s *ItineraryService) AddItem(tripID string, req *models.AddItineraryItemRequest, userID string) (*models.ItineraryItem, error) {
	if req.GooglePlaceID == "" || req.Name == "" || req.Location == nil ||
		req.Location.Lat == nil || req.Location.Lng == nil {
		return nil, utils.NewBadRequestError("Missing required fields: googlePlaceId, name, location")
	}
	if req.DayIndex == nil || req.OrderIndex == nil {
		return nil, utils.NewBadRequestError("Missing required fields: dayIndex, orderIndex")
	}
	if *req.DayIndex < 0 || *req.OrderIndex < 0 {
		return nil, utils.NewValidationError("Day and order indexes must be 0 or greater")
	}
	if err := utils.ValidateLatitude(*req.Location.Lat); err != nil {
		return nil, err
	}
	if err := utils.ValidateLongitude(*req.Location.Lng); err != nil {
		return nil, err
	}

	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	if err := authorizeTripAccess(trip, userID); err != nil {
		return nil, err
	}

	place := &models.Place{
		ExternalRef: req.GooglePlaceID,
		Name:        req.Name,
		Lat:         *req.Location.Lat,
		Lng:         *req.Location.Lng,
		Address:     req.Address,
	}
	if len(req.Categories) > 0 {
		raw, err := json.Marshal(map[string][]string{"types": req.Categories})
		if err != nil {
			return nil, err
		}
		place.Categories = types.JSONText(raw)
	}
	place, err = s.places.FindOrCreate(place)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == nil {
		title = &req.Name
	}
	item := &models.ItineraryItem{
		TripID:            tripID,
		PlaceID:           &place.ID,
		DayIndex:          *req.DayIndex,
		OrderIndex:        *req.OrderIndex,
		Title:             title,
		Description:       req.Description,
		SnapshotLat:       formatCoordinate(*req.Location.Lat),
		SnapshotLng:       formatCoordinate(*req.Location.Lng),
		SnapshotPlaceName: &place.Name,
		SnapshotAddress:   req.Address,
	}

	if err := s.items.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ReplaceItinerary swaps the trip's entire item set for the given one,
// atomically at the storage layer.
func (s *ItineraryService) ReplaceItinerary(tripID string, req *models.ReplaceItineraryRequest, userID string) ([]*models.ItineraryItem, error) {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	if err := authorizeTripAccess(trip, userID); err != nil {
		return nil, err
	}

	items := make([]*models.ItineraryItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.DayIndex == nil || in.OrderIndex == nil || in.SnapshotLat == nil || in.SnapshotLng == nil {
			return nil, utils.NewBadRequestError("Each item requires dayIndex, orderIndex, snapshotLat and snapshotLng")
		}
		if err := utils.ValidateLatitude(*in.SnapshotLat); err != nil {
			return nil, err
		}
		if err := utils.ValidateLongitude(*in.SnapshotLng); err != nil {
			return nil, err
		}
		item := &models.ItineraryItem{
			TripID:            tripID,
			PlaceID:           in.PlaceID,
			DayIndex:          *in.DayIndex,
			OrderIndex:        *in.OrderIndex,
			Title:             in.Title,
			Description:       in.Description,
			PlannedStartAt:    in.PlannedStartAt,
			PlannedEndAt:      in.PlannedEndAt,
			CostEstimate:      in.CostEstimate,
			SnapshotLat:       formatCoordinate(*in.SnapshotLat),
			SnapshotLng:       formatCoordinate(*in.SnapshotLng),
			SnapshotPlaceName: in.SnapshotPlaceName,
			SnapshotAddress:   in.SnapshotAddress,
		}
		if in.TransportSegment != nil {
			raw, err := json.Marshal(in.TransportSegment)
			if err != nil {
				return nil, err
			}
			item.TransportSegment = types.JSONText(raw)
		}
		items = append(items, item)
	}

	if err := s.items.ReplaceForTrip(tripID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem patches a single item. Item ids belonging to another trip
// are treated as not found rather than leaking their existence.
func (s *ItineraryService) UpdateItem(tripID, itemID string, patch models.ItineraryItemPatch, userID string) (*models.ItineraryItem, error) {
	if patch.Empty() {
		return nil, utils.NewValidationError("At least one field must be provided for update")
	}

	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	if err := authorizeTripAccess(trip, userID); err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TripID != tripID {
		return nil, utils.NewNotFoundError("Itinerary item")
	}

	upd, err := buildItineraryItemUpdate(patch)
	if err != nil {
		return nil, err
	}
	if err := s.items.Update(itemID, upd); err != nil {
		return nil, err
	}
	return s.items.FindByID(itemID)
}

func buildItineraryItemUpdate(patch models.ItineraryItemPatch) (models.ItineraryItemUpdate, error) {
	var upd models.ItineraryItemUpdate

	if patch.DayIndex.Set {
		if !patch.DayIndex.Valid || patch.DayIndex.Value < 0 {
			return upd, utils.NewValidationError("Day index must be 0 or greater")
		}
		upd.DayIndex = patch.DayIndex.Ptr()
	}
	if patch.OrderIndex.Set {
		if !patch.OrderIndex.Valid || patch.OrderIndex.Value < 0 {
			return upd, utils.NewValidationError("Order index must be 0 or greater")
		}
		upd.OrderIndex = patch.OrderIndex.Ptr()
	}
	if patch.Title.Set {
		if patch.Title.Valid {
			upd.Title = patch.Title.Ptr()
		} else {
			upd.ClearTitle = true
		}
	}
	if patch.Description.Set {
		if patch.Description.Valid {
			upd.Description = patch.Description.Ptr()
		} else {
			upd.ClearDescription = true
		}
	}
	if patch.PlannedStartAt.Set {
		if patch.PlannedStartAt.Valid {
			upd.PlannedStartAt = patch.PlannedStartAt.Ptr()
		} else {
			upd.ClearPlannedStartAt = true
		}
	}
	if patch.PlannedEndAt.Set {
		if patch.PlannedEndAt.Valid {
			upd.PlannedEndAt = patch.PlannedEndAt.Ptr()
		} else {
			upd.ClearPlannedEndAt = true
		}
	}
	if patch.CostEstimate.Set {
		if patch.CostEstimate.Valid {
			if patch.CostEstimate.Value < 0 {
				return upd, utils.NewValidationError("Cost estimate cannot be negative")
			}
			upd.CostEstimate = patch.CostEstimate.Ptr()
		} else {
			upd.ClearCostEstimate = true
		}
	}

	return upd, nil
}

// authorizeTripAccess mirrors the trip service's ownership predicate for
// services that mutate a trip's children.
func authorizeTripAccess(trip *models.Trip, userID string) error {
	if trip.UserID == nil || *trip.UserID == userID {
		return nil
	}
	return utils.NewForbiddenError("You do not have access to this trip")
}

// formatCoordinate renders a coordinate the way the DECIMAL(9,6) columns
// store it.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
