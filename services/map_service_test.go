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

func newTestMapService() (*MapService, *fakeItineraryStore, *fakeRouteCacheStore) {
	items := newFakeItineraryStore()
	routes := newFakeRouteCacheStore()
	return NewMapService(items, routes, 24*time.Hour, logger.NewNop()), items, routes
}

func addMapItem(t *testing.T, items *fakeItineraryStore, tripID string, day, order int, lat, lng string, title *string) *models.ItineraryItem {
	t.Helper()
	item := &models.ItineraryItem{
		TripID:      tripID,
		DayIndex:    day,
		OrderIndex:  order,
		Title:       title,
		SnapshotLat: lat,
		SnapshotLng: lng,
	}
	require.NoError(t, items.Create(item))
	return item
}

func TestGetTripMapData_EmptyItinerary(t *testing.T) {
	service, _, _ := newTestMapService()

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)

	assert.Equal(t, "trip-1", resp.TripID)
	assert.NotNil(t, resp.Markers)
	assert.Empty(t, resp.Markers)
	assert.Nil(t, resp.Polyline)
	assert.Nil(t, resp.Bounds)
}

func TestGetTripMapData_SingleItemDegenerateBounds(t *testing.T) {
	service, items, _ := newTestMapService()
	addMapItem(t, items, "trip-1", 0, 0, "48.858400", "2.294500", strPtr("Eiffel Tower"))

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)

	require.Len(t, resp.Markers, 1)
	marker := resp.Markers[0]
	assert.Equal(t, "Eiffel Tower", marker.Title)
	assert.InDelta(t, 48.8584, marker.Position.Lat, 1e-9)
	assert.InDelta(t, 2.2945, marker.Position.Lng, 1e-9)

	require.NotNil(t, resp.Bounds)
	assert.Equal(t, resp.Bounds.North, resp.Bounds.South)
	assert.Equal(t, resp.Bounds.East, resp.Bounds.West)
}

func TestGetTripMapData_BoundsCoverAllMarkers(t *testing.T) {
	service, items, _ := newTestMapService()
	addMapItem(t, items, "trip-1", 0, 0, "48.858400", "2.294500", nil)
	addMapItem(t, items, "trip-1", 0, 1, "48.860600", "2.337600", nil)
	addMapItem(t, items, "trip-1", 1, 0, "48.852900", "2.350000", nil)

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)

	require.NotNil(t, resp.Bounds)
	assert.InDelta(t, 48.8606, resp.Bounds.North, 1e-9)
	assert.InDelta(t, 48.8529, resp.Bounds.South, 1e-9)
	assert.InDelta(t, 2.35, resp.Bounds.East, 1e-9)
	assert.InDelta(t, 2.2945, resp.Bounds.West, 1e-9)
}

func TestGetTripMapData_PinConfig(t *testing.T) {
	service, items, _ := newTestMapService()
	addMapItem(t, items, "trip-1", 0, 0, "48.858400", "2.294500", nil)
	addMapItem(t, items, "trip-1", 0, 1, "48.860600", "2.337600", nil)
	addMapItem(t, items, "trip-1", 1, 0, "48.852900", "2.350000", nil)
	addMapItem(t, items, "trip-1", 6, 0, "48.853000", "2.349000", nil)

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)
	require.Len(t, resp.Markers, 4)

	// same day, same color; glyph counts from one
	assert.Equal(t, utils.MapPinPalette[0], resp.Markers[0].MapPinConfig.Background)
	assert.Equal(t, utils.MapPinPalette[0], resp.Markers[1].MapPinConfig.Background)
	assert.Equal(t, "1", resp.Markers[0].MapPinConfig.Glyph)
	assert.Equal(t, "2", resp.Markers[1].MapPinConfig.Glyph)

	// next day advances the palette; day 6 wraps back to the first color
	assert.Equal(t, utils.MapPinPalette[1], resp.Markers[2].MapPinConfig.Background)
	assert.Equal(t, utils.MapPinPalette[0], resp.Markers[3].MapPinConfig.Background)

	for _, marker := range resp.Markers {
		assert.Equal(t, utils.MapBorderColor, marker.MapPinConfig.BorderColor)
	}
}

func TestGetTripMapData_TitleFallbacks(t *testing.T) {
	service, items, _ := newTestMapService()
	noTitle := addMapItem(t, items, "trip-1", 0, 0, "10.000000", "10.000000", nil)
	noTitle.SnapshotPlaceName = strPtr("Louvre")
	addMapItem(t, items, "trip-1", 0, 1, "11.000000", "11.000000", nil)

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)
	require.Len(t, resp.Markers, 2)

	assert.Equal(t, "Louvre", resp.Markers[0].Title)
	assert.Equal(t, utils.UnnamedLocation, resp.Markers[1].Title)
}

func TestGetTripMapData_SkipsUnparseableCoordinates(t *testing.T) {
	service, items, _ := newTestMapService()
	addMapItem(t, items, "trip-1", 0, 0, "not-a-number", "2.294500", nil)
	addMapItem(t, items, "trip-1", 0, 1, "48.858400", "2.294500", nil)

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)
	assert.Len(t, resp.Markers, 1)
}

func TestGetTripMapData_FreshRoutePolyline(t *testing.T) {
	service, items, routes := newTestMapService()
	addMapItem(t, items, "trip-1", 0, 0, "48.858400", "2.294500", nil)
	routes.rows["trip-1"] = &models.RouteCache{
		TripID:          "trip-1",
		EncodedPolyline: "gfo}EtohhU",
		FetchedAt:       time.Now().UTC(),
	}

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)
	require.NotNil(t, resp.Polyline)
	assert.Equal(t, "gfo}EtohhU", *resp.Polyline)
}

func TestGetTripMapData_StaleRouteIgnored(t *testing.T) {
	service, items, routes := newTestMapService()
	addMapItem(t, items, "trip-1", 0, 0, "48.858400", "2.294500", nil)
	routes.rows["trip-1"] = &models.RouteCache{
		TripID:          "trip-1",
		EncodedPolyline: "gfo}EtohhU",
		FetchedAt:       time.Now().UTC().Add(-48 * time.Hour),
	}

	resp, err := service.GetTripMapData("trip-1")
	require.NoError(t, err)
	assert.Nil(t, resp.Polyline)
}
