package services

import (
	"math"
	"time"

	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// aiPlaceholderUserID is sent while the AI service's per-user
// personalization is not wired to real accounts.
const aiPlaceholderUserID = "00000000-0000-0000-0000-000000000000"

// AIRecommender is the slice of the AI client the recommendation flow
// depends on.
type AIRecommender interface {
	GetRecommendations(req *models.AIRecommendRequest) (*models.AIRecommendation, error)
}

// RecommendationService turns AI trip suggestions into previews or
// fully materialized trips with itineraries.
type RecommendationService struct {
	ai    AIRecommender
	trips TripStore
	maps  *MapService
	log   logger.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(ai AIRecommender, trips TripStore, maps *MapService, log logger.Logger) *RecommendationService {
	return &RecommendationService{ai: ai, trips: trips, maps: maps, log: log}
}

// Recommend requests an AI itinerary for the given constraints. Dry runs
// return the raw suggestion; otherwise the suggestion is persisted as a
// draft trip with its itinerary in one transaction and returned together
// with the derived map payload.
func (s *RecommendationService) Recommend(req *models.RecommendTripRequest, userID string) (interface{}, error) {
	startDate, err := models.ParseDate(req.Dates.Start)
	if err != nil {
		return nil, utils.NewValidationError("Start date must be a valid ISO date (YYYY-MM-DD)")
	}
	endDate, err := models.ParseDate(req.Dates.End)
	if err != nil {
		return nil, utils.NewValidationError("End date must be a valid ISO date (YYYY-MM-DD)")
	}
	if endDate.Before(startDate.Time) {
		return nil, utils.NewValidationError("End date must be after or equal to start date")
	}
	if req.Budget == nil || *req.Budget <= 0 {
		return nil, utils.NewValidationError("Budget must be greater than zero")
	}
	if err := utils.ValidateOneOf(req.Transport, "Transport mode", utils.TransportModes); err != nil {
		return nil, err
	}
	if len(req.Interests) == 0 {
		return nil, utils.NewValidationError("At least one interest is required")
	}

	// Nights, not calendar days. A same-day trip still counts as one.
	tripDays := int(math.Ceil(endDate.Sub(startDate.Time).Hours() / 24))
	if tripDays < 1 {
		tripDays = 1
	}

	aiReq := &models.AIRecommendRequest{
		UserID: aiPlaceholderUserID,
		UserProfile: models.AIUserProfile{
			Interests:      req.Interests,
			TransportModes: []string{req.Transport},
			AvgDailyBudget: int(math.Round(*req.Budget / float64(tripDays))),
		},
		Constraints: models.AIConstraints{
			OriginCity:      req.Origin.City,
			DestinationCity: req.Origin.City,
			DurationDays:    tripDays,
			TotalBudget:     *req.Budget,
			TravelPartySize: 1,
		},
		Timezone: req.Timezone,
	}

	rec, err := s.ai.GetRecommendations(aiReq)
	if err != nil {
		return nil, err
	}

	if req.DryRun {
		return &models.RecommendPreview{AIRecommendation: *rec, Preview: true}, nil
	}

	currency := rec.Currency
	if currency == "" {
		currency = req.Currency
	}
	if currency == "" {
		currency = utils.DefaultCurrency
	}

	owner := userID
	summary := rec.Summary
	budget := rec.TotalBudgetEstimate
	trip := &models.Trip{
		UserID:              &owner,
		Title:               rec.Title,
		Summary:             &summary,
		StartDate:           startDate,
		EndDate:             endDate,
		DurationDays:        durationDays(startDate, endDate),
		OriginCity:          &req.Origin.City,
		OriginLat:           req.Origin.Lat,
		OriginLng:           req.Origin.Lng,
		TransportMode:       req.Transport,
		TotalBudgetEstimate: &budget,
		Currency:            currency,
		Status:              utils.StatusDraft,
		Visibility:          utils.VisibilityPrivate,
	}

	items := make([]*models.ItineraryItem, 0, len(rec.Itinerary))
	for i := range rec.Itinerary {
		entry := rec.Itinerary[i]
		plannedStart := plannedStartAt(startDate, entry)
		plannedEnd := plannedStart.Add(time.Duration(entry.DurationMinutes) * time.Minute)
		title := entry.Title
		description := entry.Description
		placeName := entry.PlaceName
		cost := entry.EstimatedCost
		items = append(items, &models.ItineraryItem{
			DayIndex:          entry.DayIndex,
			OrderIndex:        entry.OrderIndex,
			Title:             &title,
			Description:       &description,
			PlannedStartAt:    &plannedStart,
			PlannedEndAt:      &plannedEnd,
			CostEstimate:      &cost,
			SnapshotLat:       formatCoordinate(entry.Coordinates.Lat),
			SnapshotLng:       formatCoordinate(entry.Coordinates.Lng),
			SnapshotPlaceName: &placeName,
		})
	}

	if err := s.trips.CreateWithItems(trip, items); err != nil {
		return nil, err
	}

	mapData, err := s.maps.GetTripMapData(trip.ID)
	if err != nil {
		s.log.Warn("failed to derive map data for recommended trip", "tripId", trip.ID, "error", err)
		mapData = &models.MapResponse{TripID: trip.ID, Markers: []models.MapMarker{}}
	}

	return &models.RecommendResult{Trip: trip, MapData: mapData}, nil
}

// plannedStartAt anchors an entry to its day within the trip, at the
// suggested start time when it parses and at midnight otherwise.
func plannedStartAt(startDate models.Date, entry models.AIItineraryEntry) time.Time {
	day := startDate.AddDate(0, 0, entry.DayIndex)
	if t, err := time.Parse("15:04", entry.StartTime); err == nil {
		return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	return day
}
