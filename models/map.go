package models

// MapPosition is a coordinate pair in map payloads.
type MapPosition struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapPinConfig describes how a marker pin renders.
type MapPinConfig struct {
	Glyph       string `json:"glyph"`
	Background  string `json:"background"`
	BorderColor string `json:"borderColor"`
}

// MapInfoWindow is the payload shown when a marker is selected.
type MapInfoWindow struct {
	Address    string `json:"address"`
	DayIndex   int    `json:"dayIndex"`
	OrderIndex int    `json:"orderIndex"`
}

// MapMarker is one itinerary item rendered on the map.
type MapMarker struct {
	ID                string        `json:"id"`
	Position          MapPosition   `json:"position"`
	Title             string        `json:"title"`
	MapPinConfig      MapPinConfig  `json:"mapPinConfig"`
	InfoWindowContent MapInfoWindow `json:"infoWindowContent"`
}

// MapBounds is the bounding box over all markers.
type MapBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// MapResponse is the full map payload for a trip.
type MapResponse struct {
	TripID   string      `json:"tripId"`
	Polyline *string     `json:"polyline"`
	Markers  []MapMarker `json:"markers"`
	Bounds   *MapBounds  `json:"bounds,omitempty"`
}
