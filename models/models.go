package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Trip is the top-level planning entity a user creates.
// UserID is nullable: anonymous trips have no owner.
type Trip struct {
	ID                  string    `db:"id" json:"id"`
	UserID              *string   `db:"user_id" json:"userId"`
	Title               string    `db:"title" json:"title"`
	Summary             *string   `db:"summary" json:"summary"`
	StartDate           Date      `db:"start_date" json:"startDate"`
	EndDate             Date      `db:"end_date" json:"endDate"`
	DurationDays        int       `db:"duration_days" json:"durationDays"`
	OriginCity          *string   `db:"origin_city" json:"originCity"`
	OriginLat           *float64  `db:"origin_lat" json:"originLat"`
	OriginLng           *float64  `db:"origin_lng" json:"originLng"`
	TransportMode       string    `db:"transport_mode" json:"transportMode"`
	TotalBudgetEstimate *float64  `db:"total_budget_estimate" json:"totalBudgetEstimate"`
	Currency            string    `db:"currency" json:"currency"`
	Status              string    `db:"status" json:"status"`
	Visibility          string    `db:"visibility" json:"visibility"`
	ShareSlug           *string   `db:"share_slug" json:"shareSlug"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// Place is a deduplicated global catalog entry for a physical location,
// keyed by the mapping provider's identifier.
type Place struct {
	ID          string         `db:"id" json:"id"`
	ExternalRef string         `db:"external_ref" json:"externalRef"`
	Name        string         `db:"name" json:"name"`
	Lat         float64        `db:"lat" json:"lat"`
	Lng         float64        `db:"lng" json:"lng"`
	Address     *string        `db:"address" json:"address"`
	Categories  types.JSONText `db:"categories" json:"categories,omitempty"`
	Rating      *float64       `db:"rating" json:"rating"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// ItineraryItem is a scheduled place/activity within a trip. The
// snapshot_* columns copy the place's mutable fields at insertion time so
// the historical itinerary stays stable even if the catalog entry changes
// or the place row is deleted. Snapshot coordinates keep the column's
// decimal-as-string representation.
type ItineraryItem struct {
	ID                string         `db:"id" json:"id"`
	TripID            string         `db:"trip_id" json:"tripId"`
	PlaceID           *string        `db:"place_id" json:"placeId"`
	DayIndex          int            `db:"day_index" json:"dayIndex"`
	OrderIndex        int            `db:"order_index" json:"orderIndex"`
	Title             *string        `db:"title" json:"title"`
	Description       *string        `db:"description" json:"description"`
	PlannedStartAt    *time.Time     `db:"planned_start_at" json:"plannedStartAt"`
	PlannedEndAt      *time.Time     `db:"planned_end_at" json:"plannedEndAt"`
	TransportSegment  types.JSONText `db:"transport_segment" json:"transportSegment,omitempty"`
	CostEstimate      *float64       `db:"cost_estimate" json:"costEstimate"`
	SnapshotLat       string         `db:"snapshot_lat" json:"snapshotLat"`
	SnapshotLng       string         `db:"snapshot_lng" json:"snapshotLng"`
	SnapshotPlaceName *string        `db:"snapshot_place_name" json:"snapshotPlaceName"`
	SnapshotAddress   *string        `db:"snapshot_address" json:"snapshotAddress"`
	CreatedAt         time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updatedAt"`
}

// BudgetItem is a single expense or budget allocation line tied to a trip,
// optionally attributed to a specific itinerary item.
type BudgetItem struct {
	ID                    string    `db:"id" json:"id"`
	TripID                string    `db:"trip_id" json:"tripId"`
	Category              string    `db:"category" json:"category"`
	Title                 string    `db:"title" json:"title"`
	Quantity              int       `db:"quantity" json:"quantity"`
	UnitPrice             float64   `db:"unit_price" json:"unitPrice"`
	Currency              string    `db:"currency" json:"currency"`
	Source                string    `db:"source" json:"source"`
	LinkedItineraryItemID *string   `db:"linked_itinerary_item_id" json:"linkedItineraryItemId"`
	CreatedAt             time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `db:"updated_at" json:"updatedAt"`
}

// RouteCache memoizes one routing-provider response per trip, keyed by the
// request signature. Rows expire by absolute age, not by usage.
type RouteCache struct {
	TripID          string         `db:"trip_id" json:"tripId"`
	Provider        string         `db:"provider" json:"provider"`
	RequestSig      string         `db:"request_sig" json:"requestSig"`
	EncodedPolyline string         `db:"encoded_polyline" json:"encodedPolyline"`
	Bounds          types.JSONText `db:"bounds" json:"bounds"`
	Legs            types.JSONText `db:"legs" json:"legs"`
	DistanceM       int            `db:"distance_m" json:"distanceM"`
	DurationS       int            `db:"duration_s" json:"durationS"`
	FetchedAt       time.Time      `db:"fetched_at" json:"fetchedAt"`
}

// UserContext is the caller identity extracted from gateway headers.
type UserContext struct {
	ID    string
	Email string
	Roles []string
}
