package services

import (
	"strconv"
	"time"

	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// MapService derives the map rendering payload for a trip from its
// itinerary: one marker per item, a bounding box over all markers, and
// the cached route polyline when a fresh one exists.
type MapService struct {
	items  ItineraryStore
	routes RouteCacheStore
	ttl    time.Duration
	log    logger.Logger
}

// NewMapService creates a new MapService. ttl bounds how old a cached
// polyline may be before it is ignored.
func NewMapService(items ItineraryStore, routes RouteCacheStore, ttl time.Duration, log logger.Logger) *MapService {
	return &MapService{items: items, routes: routes, ttl: ttl, log: log}
}

// GetTripMapData builds the marker set for a trip. Items whose snapshot
// coordinates fail to parse are skipped rather than failing the whole
// payload. An empty itinerary yields empty markers, a null polyline and
// no bounds.
func (s *MapService) GetTripMapData(tripID string) (*models.MapResponse, error) {
	items, err := s.items.FindByTripID(tripID)
	if err != nil {
		return nil, err
	}

	resp := &models.MapResponse{
		TripID:  tripID,
		Markers: []models.MapMarker{},
	}
	if len(items) == 0 {
		return resp, nil
	}

	var (
		haveBounds               bool
		north, south, east, west float64
	)
	for _, item := range items {
		lat, errLat := strconv.ParseFloat(item.SnapshotLat, 64)
		lng, errLng := strconv.ParseFloat(item.SnapshotLng, 64)
		if errLat != nil || errLng != nil {
			s.log.Warn("skipping item with unparseable snapshot coordinates",
				"itemId", item.ID, "lat", item.SnapshotLat, "lng", item.SnapshotLng)
			continue
		}

		title := utils.UnnamedLocation
		if item.Title != nil && *item.Title != "" {
			title = *item.Title
		} else if item.SnapshotPlaceName != nil && *item.SnapshotPlaceName != "" {
			title = *item.SnapshotPlaceName
		}

		address := ""
		if item.SnapshotAddress != nil {
			address = *item.SnapshotAddress
		}

		resp.Markers = append(resp.Markers, models.MapMarker{
			ID:       item.ID,
			Position: models.MapPosition{Lat: lat, Lng: lng},
			Title:    title,
			MapPinConfig: models.MapPinConfig{
				Glyph:       strconv.Itoa(item.OrderIndex + 1),
				Background:  colorForDay(item.DayIndex),
				BorderColor: utils.MapBorderColor,
			},
			InfoWindowContent: models.MapInfoWindow{
				Address:    address,
				DayIndex:   item.DayIndex,
				OrderIndex: item.OrderIndex,
			},
		})

		if !haveBounds {
			north, south, east, west = lat, lat, lng, lng
			haveBounds = true
			continue
		}
		if lat > north {
			north = lat
		}
		if lat < south {
			south = lat
		}
		if lng > east {
			east = lng
		}
		if lng < west {
			west = lng
		}
	}

	if haveBounds {
		resp.Bounds = &models.MapBounds{North: north, South: south, East: east, West: west}
	}

	cached, err := s.routes.FindByTripID(tripID)
	if err != nil {
		s.log.Warn("route cache lookup failed", "tripId", tripID, "error", err)
		return resp, nil
	}
	if cached != nil && time.Since(cached.FetchedAt) <= s.ttl && cached.EncodedPolyline != "" {
		polyline := cached.EncodedPolyline
		resp.Polyline = &polyline
	}

	return resp, nil
}

// colorForDay cycles the fixed palette by day index.
func colorForDay(dayIndex int) string {
	idx := dayIndex % len(utils.MapPinPalette)
	if idx < 0 {
		idx += len(utils.MapPinPalette)
	}
	return utils.MapPinPalette[idx]
}
