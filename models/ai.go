package models

import "encoding/json"

// AIUserProfile is the profile slice of the AI service request.
type AIUserProfile struct {
	Interests      []string `json:"interests"`
	TransportModes []string `json:"transport_modes"`
	AvgDailyBudget int      `json:"avg_daily_budget"`
}

// AIConstraints is the constraints slice of the AI service request.
type AIConstraints struct {
	OriginCity      string  `json:"origin_city"`
	DestinationCity string  `json:"destination_city"`
	DurationDays    int     `json:"duration_days"`
	TotalBudget     float64 `json:"total_budget"`
	TravelPartySize int     `json:"travel_party_size"`
}

// AIRecommendRequest is the payload sent to the AI recommendation service.
type AIRecommendRequest struct {
	UserID      string        `json:"user_id"`
	UserProfile AIUserProfile `json:"user_profile"`
	Constraints AIConstraints `json:"constraints"`
	Timezone    string        `json:"timezone,omitempty"`
}

// AICoordinates is a lat/lng pair in AI responses.
type AICoordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AIItineraryEntry is one suggested activity in an AI recommendation.
type AIItineraryEntry struct {
	DayIndex        int           `json:"day_index"`
	OrderIndex      int           `json:"order_index"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	PlaceName       string        `json:"place_name"`
	Coordinates     AICoordinates `json:"coordinates"`
	EstimatedCost   float64       `json:"estimated_cost"`
	DurationMinutes int           `json:"duration_minutes"`
	StartTime       string        `json:"start_time"`
	Category        string        `json:"category"`
	Rationale       string        `json:"rationale"`
}

// AIRecommendation is the AI service's response contract.
type AIRecommendation struct {
	Title               string             `json:"title"`
	Summary             string             `json:"summary"`
	Destination         string             `json:"destination"`
	TotalBudgetEstimate float64            `json:"total_budget_estimate"`
	Currency            string             `json:"currency"`
	DurationDays        int                `json:"duration_days"`
	Itinerary           []AIItineraryEntry `json:"itinerary"`
	Tags                []string           `json:"tags"`
	Tips                []string           `json:"tips"`
}

// RecommendPreview wraps the raw AI payload for dry-run requests.
type RecommendPreview struct {
	AIRecommendation
	Preview bool `json:"preview"`
}

// RecommendResult is the payload returned when a recommendation was
// materialized into a real trip.
type RecommendResult struct {
	Trip    *Trip        `json:"trip"`
	MapData *MapResponse `json:"mapData"`
}

// AIErrorBody is the error shape the AI service returns on failures.
type AIErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// DetailString flattens the detail field to a printable string, if any.
func (b AIErrorBody) DetailString() string {
	if len(b.Detail) == 0 || string(b.Detail) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Detail, &s); err == nil {
		return s
	}
	return string(b.Detail)
}
