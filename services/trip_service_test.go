package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"

	"github.com/lib/pq"
)

func newTestTripService() (*TripService, *fakeTripStore) {
	trips := newFakeTripStore()
	return NewTripService(trips, trips.items, newFakeRouteCacheStore(), logger.NewNop()), trips
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func createTestTrip(t *testing.T, service *TripService, owner string) *models.Trip {
	t.Helper()
	trip, err := service.CreateTrip(strPtr(owner), &models.CreateTripRequest{
		Title:     "Tokyo Long Weekend",
		StartDate: "2026-10-01",
		EndDate:   "2026-10-04",
	})
	require.NoError(t, err)
	return trip
}

func TestCreateTrip_Defaults(t *testing.T) {
	service, _ := newTestTripService()

	trip := createTestTrip(t, service, "user-1")

	assert.Equal(t, "draft", trip.Status)
	assert.Equal(t, "private", trip.Visibility)
	assert.Equal(t, "car", trip.TransportMode)
	assert.Equal(t, "USD", trip.Currency)
	assert.Equal(t, 4, trip.DurationDays)
	assert.NotEmpty(t, trip.ID)
}

func TestCreateTrip_EndBeforeStart(t *testing.T) {
	service, _ := newTestTripService()

	_, err := service.CreateTrip(strPtr("user-1"), &models.CreateTripRequest{
		Title:     "Backwards",
		StartDate: "2026-10-04",
		EndDate:   "2026-10-01",
	})

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateTrip_InvalidTransportMode(t *testing.T) {
	service, _ := newTestTripService()

	_, err := service.CreateTrip(strPtr("user-1"), &models.CreateTripRequest{
		Title:         "Boat trip",
		StartDate:     "2026-10-01",
		EndDate:       "2026-10-02",
		TransportMode: "boat",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transport mode")
}

func TestGetTrip_OwnershipEnforced(t *testing.T) {
	service, _ := newTestTripService()
	trip := createTestTrip(t, service, "user-1")

	_, err := service.GetTrip(trip.ID, "user-2")

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)
}

func TestGetTrip_AnonymousTripReadableByAnyCaller(t *testing.T) {
	service, _ := newTestTripService()
	trip, err := service.CreateTrip(nil, &models.CreateTripRequest{
		Title:     "Ownerless",
		StartDate: "2026-10-01",
		EndDate:   "2026-10-02",
	})
	require.NoError(t, err)

	got, err := service.GetTrip(trip.ID, "anyone")
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
}

func TestGetUserTrips_OnlyOwnList(t *testing.T) {
	service, _ := newTestTripService()
	createTestTrip(t, service, "user-1")

	_, err := service.GetUserTrips("user-1", "user-2")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)

	trips, err := service.GetUserTrips("user-1", "user-1")
	require.NoError(t, err)
	assert.Len(t, trips, 1)
}

func TestUpdateTrip_EmptyPatchRejected(t *testing.T) {
	service, _ := newTestTripService()
	trip := createTestTrip(t, service, "user-1")

	_, err := service.UpdateTrip(trip.ID, models.TripPatch{}, "user-1")

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateTrip_MovingDatesRecomputesDuration(t *testing.T) {
	service, _ := newTestTripService()
	trip := createTestTrip(t, service, "user-1")

	patch := models.TripPatch{}
	patch.EndDate.Set = true
	patch.EndDate.Valid = true
	patch.EndDate.Value = "2026-10-08"

	updated, err := service.UpdateTrip(trip.ID, patch, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 8, updated.DurationDays)
}

func TestUpdateTrip_NullClearsOriginCity(t *testing.T) {
	service, trips := newTestTripService()
	trip := createTestTrip(t, service, "user-1")
	trips.trips[trip.ID].OriginCity = strPtr("Berlin")

	patch := models.TripPatch{}
	patch.OriginCity.Set = true
	patch.OriginCity.Valid = false

	updated, err := service.UpdateTrip(trip.ID, patch, "user-1")
	require.NoError(t, err)
	assert.Nil(t, updated.OriginCity)
}

func TestDeleteTrip_DropsRouteCache(t *testing.T) {
	trips := newFakeTripStore()
	routes := newFakeRouteCacheStore()
	service := NewTripService(trips, trips.items, routes, logger.NewNop())

	trip := createTestTrip(t, service, "user-1")
	routes.rows[trip.ID] = &models.RouteCache{TripID: trip.ID}

	require.NoError(t, service.DeleteTrip(trip.ID, "user-1"))
	assert.Empty(t, routes.rows)

	err := service.DeleteTrip(trip.ID, "user-1")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestCloneTrip_CopiesItineraryIntoPrivateDraft(t *testing.T) {
	service, trips := newTestTripService()
	trip := createTestTrip(t, service, "user-1")
	trips.trips[trip.ID].Status = "final"
	trips.trips[trip.ID].Visibility = "public"

	for day := 0; day < 2; day++ {
		require.NoError(t, trips.items.Create(&models.ItineraryItem{
			TripID:      trip.ID,
			DayIndex:    day,
			OrderIndex:  0,
			Title:       strPtr("Stop"),
			SnapshotLat: "48.858400",
			SnapshotLng: "2.294500",
		}))
	}

	clone, err := service.CloneTrip(trip.ID, "user-2")
	require.NoError(t, err)

	assert.Equal(t, "Tokyo Long Weekend (Copy)", clone.Title)
	assert.Equal(t, "draft", clone.Status)
	assert.Equal(t, "private", clone.Visibility)
	require.NotNil(t, clone.UserID)
	assert.Equal(t, "user-2", *clone.UserID)

	cloned, err := trips.items.FindByTripID(clone.ID)
	require.NoError(t, err)
	require.Len(t, cloned, 2)
	assert.Equal(t, 0, cloned[0].DayIndex)
	assert.Equal(t, 1, cloned[1].DayIndex)
}

func TestCloneTrip_PrivateTripOnlyByOwner(t *testing.T) {
	service, _ := newTestTripService()
	trip := createTestTrip(t, service, "user-1")

	_, err := service.CloneTrip(trip.ID, "user-2")

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)
}

func TestCreateShareLink_SlugShapeAndVisibility(t *testing.T) {
	service, trips := newTestTripService()
	trip := createTestTrip(t, service, "user-1")

	slug, err := service.CreateShareLink(trip.ID, "user-1")
	require.NoError(t, err)

	assert.Len(t, slug, utils.SlugLength)
	for _, r := range slug {
		assert.True(t, strings.ContainsRune(utils.SlugCharset, r), "unexpected slug rune %q", r)
	}
	assert.Equal(t, "unlisted", trips.trips[trip.ID].Visibility)
}

func TestCreateShareLink_RetriesOnCollision(t *testing.T) {
	service, trips := newTestTripService()
	trip := createTestTrip(t, service, "user-1")

	trips.updateErr = &pq.Error{Code: "23505"}

	slug, err := service.CreateShareLink(trip.ID, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, slug)
	assert.Len(t, trips.updates, 2)
}

func TestGetTripByShareSlug(t *testing.T) {
	service, trips := newTestTripService()
	trip := createTestTrip(t, service, "user-1")
	trips.trips[trip.ID].ShareSlug = strPtr("abCD1234")
	trips.trips[trip.ID].Visibility = "unlisted"

	got, err := service.GetTripByShareSlug("abCD1234")
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)

	_, err = service.GetTripByShareSlug("missing1")
	require.Error(t, err)
	assert.Equal(t, utils.ErrTripNotShared, err.Error())
}
