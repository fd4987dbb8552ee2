package services

import (
	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// TripService implements the trip lifecycle: create, read, update,
// delete, clone, and share-link management, with ownership checks.
type TripService struct {
	trips  TripStore
	items  ItineraryStore
	routes RouteCacheStore
	log    logger.Logger
}

// NewTripService creates a new TripService
func NewTripService(trips TripStore, items ItineraryStore, routes RouteCacheStore, log logger.Logger) *TripService {
	return &TripService{trips: trips, items: items, routes: routes, log: log}
}

// CreateTrip validates and persists a new trip for the given owner.
// userID may be nil for anonymous trips.
func (s *TripService) CreateTrip(userID *string, req *models.CreateTripRequest) (*models.Trip, error) {
	if err := utils.ValidateRequired(req.Title, "Title"); err != nil {
		return nil, err
	}
	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, utils.NewValidationError("Start date must be a valid ISO date (YYYY-MM-DD)")
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		return nil, utils.NewValidationError("End date must be a valid ISO date (YYYY-MM-DD)")
	}
	if endDate.Before(startDate.Time) {
		return nil, utils.NewValidationError("End date must be after or equal to start date")
	}

	transportMode := req.TransportMode
	if transportMode == "" {
		transportMode = "car"
	}
	if err := utils.ValidateOneOf(transportMode, "Transport mode", utils.TransportModes); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	if err := utils.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	if req.OriginLat != nil {
		if err := utils.ValidateLatitude(*req.OriginLat); err != nil {
			return nil, err
		}
	}
	if req.OriginLng != nil {
		if err := utils.ValidateLongitude(*req.OriginLng); err != nil {
			return nil, err
		}
	}
	if req.TotalBudgetEstimate != nil && *req.TotalBudgetEstimate < 0 {
		return nil, utils.NewValidationError("Total budget estimate cannot be negative")
	}

	trip := &models.Trip{
		UserID:              userID,
		Title:               req.Title,
		StartDate:           startDate,
		EndDate:             endDate,
		DurationDays:        durationDays(startDate, endDate),
		OriginCity:          req.OriginCity,
		OriginLat:           req.OriginLat,
		OriginLng:           req.OriginLng,
		TransportMode:       transportMode,
		TotalBudgetEstimate: req.TotalBudgetEstimate,
		Currency:            currency,
		Status:              utils.StatusDraft,
		Visibility:          utils.VisibilityPrivate,
	}

	if err := s.trips.Create(trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// GetTrip returns a trip the caller may access. Visibility does not
// bypass the ownership check on this path; only the share-slug path does.
func (s *TripService) GetTrip(tripID, userID string) (*models.Trip, error) {
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
	return trip, nil
}

// GetUserTrips lists a user's trips; callers may only list their own.
func (s *TripService) GetUserTrips(userID, callerID string) ([]*models.Trip, error) {
	if userID != callerID {
		return nil, utils.NewForbiddenError("You do not have access to these trips")
	}
	return s.trips.FindByUserID(userID)
}

// UpdateTrip applies a whitelisted partial update and returns the
// persisted row, re-read so the caller sees canonical state.
func (s *TripService) UpdateTrip(tripID string, patch models.TripPatch, userID string) (*models.Trip, error) {
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

	upd, err := buildTripUpdate(trip, patch)
	if err != nil {
		return nil, err
	}

	if err := s.trips.Update(tripID, upd); err != nil {
		return nil, err
	}
	return s.trips.FindByID(tripID)
}

// DeleteTrip removes a trip; itinerary and budget rows cascade. Deleting
// an already-deleted trip reports not found.
func (s *TripService) DeleteTrip(tripID, userID string) error {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return err
	}
	if trip == nil {
		return utils.NewNotFoundError("Trip")
	}
	if err := authorizeTripAccess(trip, userID); err != nil {
		return err
	}

	if err := s.routes.DeleteByTripID(tripID); err != nil {
		s.log.Warn("failed to drop route cache for trip", "tripId", tripID, "error", err)
	}

	deleted, err := s.trips.Delete(tripID)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewNotFoundError("Trip")
	}
	return nil
}

// CloneTrip copies a trip and its full itinerary into a new draft owned
// by the requester. Private trips may only be cloned by their owner.
func (s *TripService) CloneTrip(tripID, userID string) (*models.Trip, error) {
	original, err := s.trips.FindByID(tripID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	if original.Visibility == utils.VisibilityPrivate {
		if err := authorizeTripAccess(original, userID); err != nil {
			return nil, err
		}
	}

	owner := userID
	clone := &models.Trip{
		UserID:              &owner,
		Title:               original.Title + " (Copy)",
		Summary:             original.Summary,
		StartDate:           original.StartDate,
		EndDate:             original.EndDate,
		DurationDays:        original.DurationDays,
		OriginCity:          original.OriginCity,
		OriginLat:           original.OriginLat,
		OriginLng:           original.OriginLng,
		TransportMode:       original.TransportMode,
		TotalBudgetEstimate: original.TotalBudgetEstimate,
		Currency:            original.Currency,
		Status:              utils.StatusDraft,
		Visibility:          utils.VisibilityPrivate,
	}

	originalItems, err := s.items.FindByTripID(tripID)
	if err != nil {
		return nil, err
	}
	copies := make([]*models.ItineraryItem, 0, len(originalItems))
	for _, item := range originalItems {
		copies = append(copies, &models.ItineraryItem{
			PlaceID:           item.PlaceID,
			DayIndex:          item.DayIndex,
			OrderIndex:        item.OrderIndex,
			Title:             item.Title,
			Description:       item.Description,
			PlannedStartAt:    item.PlannedStartAt,
			PlannedEndAt:      item.PlannedEndAt,
			TransportSegment:  item.TransportSegment,
			CostEstimate:      item.CostEstimate,
			SnapshotLat:       item.SnapshotLat,
			SnapshotLng:       item.SnapshotLng,
			SnapshotPlaceName: item.SnapshotPlaceName,
			SnapshotAddress:   item.SnapshotAddress,
		})
	}

	if err := s.trips.CreateWithItems(clone, copies); err != nil {
		return nil, err
	}
	return clone, nil
}

// CreateShareLink allocates a share slug for a trip and flips its
// visibility to unlisted. Slug collisions are retried with a fresh draw.
func (s *TripService) CreateShareLink(tripID, userID string) (string, error) {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return "", err
	}
	if trip == nil {
		return "", utils.NewNotFoundError("Trip")
	}
	if err := authorizeTripAccess(trip, userID); err != nil {
		return "", err
	}

	visibility := utils.VisibilityUnlisted
	for attempt := 0; attempt < utils.SlugMaxAttempts; attempt++ {
		slug := utils.GenerateShareSlug()
		err := s.trips.Update(tripID, models.TripUpdate{
			ShareSlug:  &slug,
			Visibility: &visibility,
		})
		if err == nil {
			return slug, nil
		}
		if utils.IsUniqueViolation(err) {
			s.log.Warn("share slug collision, retrying", "tripId", tripID, "attempt", attempt+1)
			continue
		}
		return "", err
	}
	return "", utils.NewConflictError("Could not allocate a unique share slug")
}

// GetTripByShareSlug is the public read path: no ownership check.
func (s *TripService) GetTripByShareSlug(slug string) (*models.Trip, error) {
	trip, err := s.trips.FindByShareSlug(slug)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, &utils.AppError{Code: 404, Message: utils.ErrTripNotShared}
	}
	return trip, nil
}

// buildTripUpdate maps a request patch onto storage columns, validating
// values and recomputing the duration when either date moves.
func buildTripUpdate(trip *models.Trip, patch models.TripPatch) (models.TripUpdate, error) {
	var upd models.TripUpdate

	if patch.Title.Set {
		if !patch.Title.Valid || patch.Title.Value == "" {
			return upd, utils.NewValidationError("Title cannot be empty")
		}
		if len(patch.Title.Value) > 255 {
			return upd, utils.NewValidationError("Title must be at most 255 characters")
		}
		upd.Title = patch.Title.Ptr()
	}

	startDate := trip.StartDate
	endDate := trip.EndDate
	datesChanged := false

	if patch.StartDate.Set {
		if !patch.StartDate.Valid {
			return upd, utils.NewValidationError("Start date cannot be null")
		}
		parsed, err := models.ParseDate(patch.StartDate.Value)
		if err != nil {
			return upd, utils.NewValidationError("Start date must be a valid ISO date (YYYY-MM-DD)")
		}
		startDate = parsed
		upd.StartDate = &parsed
		datesChanged = true
	}
	if patch.EndDate.Set {
		if !patch.EndDate.Valid {
			return upd, utils.NewValidationError("End date cannot be null")
		}
		parsed, err := models.ParseDate(patch.EndDate.Value)
		if err != nil {
			return upd, utils.NewValidationError("End date must be a valid ISO date (YYYY-MM-DD)")
		}
		endDate = parsed
		upd.EndDate = &parsed
		datesChanged = true
	}
	if datesChanged {
		if endDate.Before(startDate.Time) {
			return upd, utils.NewValidationError("End date must be after or equal to start date")
		}
		days := durationDays(startDate, endDate)
		upd.DurationDays = &days
	}

	if patch.OriginCity.Set {
		if patch.OriginCity.Valid {
			upd.OriginCity = patch.OriginCity.Ptr()
		} else {
			upd.ClearOriginCity = true
		}
	}
	if patch.OriginLat.Set {
		if patch.OriginLat.Valid {
			if err := utils.ValidateLatitude(patch.OriginLat.Value); err != nil {
				return upd, err
			}
			upd.OriginLat = patch.OriginLat.Ptr()
		} else {
			upd.ClearOriginLat = true
		}
	}
	if patch.OriginLng.Set {
		if patch.OriginLng.Valid {
			if err := utils.ValidateLongitude(patch.OriginLng.Value); err != nil {
				return upd, err
			}
			upd.OriginLng = patch.OriginLng.Ptr()
		} else {
			upd.ClearOriginLng = true
		}
	}

	return upd, nil
}

// durationDays is the inclusive calendar-day count of the trip.
func durationDays(start, end models.Date) int {
	return int(end.Sub(start.Time).Hours()/24) + 1
}
