package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

type fakeRecommender struct {
	lastRequest    *models.AIRecommendRequest
	recommendation *models.AIRecommendation
	err            error
}

func (f *fakeRecommender) GetRecommendations(req *models.AIRecommendRequest) (*models.AIRecommendation, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.recommendation, nil
}

func sampleRecommendation() *models.AIRecommendation {
	return &models.AIRecommendation{
		Title:               "Paris Highlights",
		Summary:             "Three days of museums and food",
		Destination:         "Paris",
		TotalBudgetEstimate: 850,
		Currency:            "EUR",
		DurationDays:        3,
		Itinerary: []models.AIItineraryEntry{
			{
				DayIndex: 0, OrderIndex: 0,
				Title:       "Louvre",
				PlaceName:   "Musée du Louvre",
				Coordinates: models.AICoordinates{Lat: 48.8606, Lng: 2.3376},
				StartTime:   "09:30", DurationMinutes: 180,
				EstimatedCost: 22,
			},
			{
				DayIndex: 1, OrderIndex: 0,
				Title:       "Eiffel Tower",
				PlaceName:   "Tour Eiffel",
				Coordinates: models.AICoordinates{Lat: 48.8584, Lng: 2.2945},
				StartTime:   "not-a-time", DurationMinutes: 120,
				EstimatedCost: 28,
			},
		},
	}
}

func sampleRecommendTripRequest(dryRun bool) *models.RecommendTripRequest {
	return &models.RecommendTripRequest{
		Origin:    models.RecommendOrigin{City: "Paris"},
		Dates:     models.RecommendDates{Start: "2026-10-01", End: "2026-10-04"},
		Budget:    floatPtr(900),
		Interests: []string{"museums", "food"},
		Transport: "walk",
		Timezone:  "Europe/Paris",
		DryRun:    dryRun,
	}
}

func newTestRecommendationService(ai AIRecommender) (*RecommendationService, *fakeTripStore) {
	trips := newFakeTripStore()
	maps := NewMapService(trips.items, newFakeRouteCacheStore(), 24*time.Hour, logger.NewNop())
	return NewRecommendationService(ai, trips, maps, logger.NewNop()), trips
}

func TestRecommend_BuildsAIRequest(t *testing.T) {
	ai := &fakeRecommender{recommendation: sampleRecommendation()}
	service, _ := newTestRecommendationService(ai)

	_, err := service.Recommend(sampleRecommendTripRequest(true), "user-1")
	require.NoError(t, err)

	req := ai.lastRequest
	require.NotNil(t, req)
	assert.Equal(t, aiPlaceholderUserID, req.UserID)
	assert.Equal(t, []string{"walk"}, req.UserProfile.TransportModes)
	assert.Equal(t, 300, req.UserProfile.AvgDailyBudget)
	assert.Equal(t, "Paris", req.Constraints.OriginCity)
	assert.Equal(t, "Paris", req.Constraints.DestinationCity)
	assert.Equal(t, 3, req.Constraints.DurationDays)
	assert.Equal(t, 900.0, req.Constraints.TotalBudget)
	assert.Equal(t, 1, req.Constraints.TravelPartySize)
	assert.Equal(t, "Europe/Paris", req.Timezone)
}

func TestRecommend_DryRunReturnsPreview(t *testing.T) {
	ai := &fakeRecommender{recommendation: sampleRecommendation()}
	service, trips := newTestRecommendationService(ai)

	result, err := service.Recommend(sampleRecommendTripRequest(true), "user-1")
	require.NoError(t, err)

	preview, ok := result.(*models.RecommendPreview)
	require.True(t, ok)
	assert.True(t, preview.Preview)
	assert.Equal(t, "Paris Highlights", preview.Title)
	assert.Empty(t, trips.trips)
}

func TestRecommend_MaterializesTripWithItinerary(t *testing.T) {
	ai := &fakeRecommender{recommendation: sampleRecommendation()}
	service, trips := newTestRecommendationService(ai)

	result, err := service.Recommend(sampleRecommendTripRequest(false), "user-1")
	require.NoError(t, err)

	res, ok := result.(*models.RecommendResult)
	require.True(t, ok)
	require.NotNil(t, res.Trip)

	trip := res.Trip
	assert.Equal(t, "Paris Highlights", trip.Title)
	require.NotNil(t, trip.UserID)
	assert.Equal(t, "user-1", *trip.UserID)
	assert.Equal(t, "draft", trip.Status)
	assert.Equal(t, "private", trip.Visibility)
	assert.Equal(t, "EUR", trip.Currency)
	require.NotNil(t, trip.TotalBudgetEstimate)
	assert.Equal(t, 850.0, *trip.TotalBudgetEstimate)
	assert.Equal(t, 4, trip.DurationDays)

	items, err := trips.items.FindByTripID(trip.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	require.NotNil(t, first.PlannedStartAt)
	assert.Equal(t, time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC), *first.PlannedStartAt)
	require.NotNil(t, first.PlannedEndAt)
	assert.Equal(t, time.Date(2026, 10, 1, 12, 30, 0, 0, time.UTC), *first.PlannedEndAt)
	assert.Equal(t, "48.860600", first.SnapshotLat)

	// unparseable start time anchors to midnight of the entry's day
	second := items[1]
	require.NotNil(t, second.PlannedStartAt)
	assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), *second.PlannedStartAt)

	require.NotNil(t, res.MapData)
	assert.Len(t, res.MapData.Markers, 2)
}

func TestRecommend_AIErrorPassesThrough(t *testing.T) {
	ai := &fakeRecommender{err: utils.NewServiceUnavailableError("AI recommendation service is unavailable")}
	service, trips := newTestRecommendationService(ai)

	_, err := service.Recommend(sampleRecommendTripRequest(false), "user-1")

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.Code)
	assert.Empty(t, trips.trips)
}

func TestRecommend_Validation(t *testing.T) {
	ai := &fakeRecommender{recommendation: sampleRecommendation()}
	service, _ := newTestRecommendationService(ai)

	req := sampleRecommendTripRequest(true)
	req.Dates.End = "2026-09-30"
	_, err := service.Recommend(req, "user-1")
	require.Error(t, err)

	req = sampleRecommendTripRequest(true)
	req.Budget = floatPtr(0)
	_, err = service.Recommend(req, "user-1")
	require.Error(t, err)

	req = sampleRecommendTripRequest(true)
	req.Transport = "boat"
	_, err = service.Recommend(req, "user-1")
	require.Error(t, err)
}
