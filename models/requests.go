package models

import "time"

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Title               string   `json:"title" binding:"required,max=255"`
	StartDate           string   `json:"startDate" binding:"required"`
	EndDate             string   `json:"endDate" binding:"required"`
	OriginCity          *string  `json:"originCity"`
	OriginLat           *float64 `json:"originLat"`
	OriginLng           *float64 `json:"originLng"`
	TransportMode       string   `json:"transportMode"`
	TotalBudgetEstimate *float64 `json:"totalBudgetEstimate"`
	Currency            string   `json:"currency"`
}

// TripPatch is the body of PATCH /trips/:id. Only whitelisted fields are
// updatable; Optional distinguishes absent keys from explicit nulls.
type TripPatch struct {
	Title      Optional[string]  `json:"title"`
	StartDate  Optional[string]  `json:"startDate"`
	EndDate    Optional[string]  `json:"endDate"`
	OriginCity Optional[string]  `json:"originCity"`
	OriginLat  Optional[float64] `json:"originLat"`
	OriginLng  Optional[float64] `json:"originLng"`
}

// Empty reports whether the patch carries no keys at all.
func (p TripPatch) Empty() bool {
	return !p.Title.Set && !p.StartDate.Set && !p.EndDate.Set &&
		!p.OriginCity.Set && !p.OriginLat.Set && !p.OriginLng.Set
}

// TripUpdate lists the columns a trip update may touch at the storage
// layer. A nil pointer leaves the column unchanged; a Clear flag writes
// NULL to the matching nullable column.
type TripUpdate struct {
	Title           *string
	StartDate       *Date
	EndDate         *Date
	DurationDays    *int
	OriginCity      *string
	ClearOriginCity bool
	OriginLat       *float64
	ClearOriginLat  bool
	OriginLng       *float64
	ClearOriginLng  bool
	Visibility      *string
	ShareSlug       *string
}

// LocationPayload is a lat/lng pair in request bodies.
type LocationPayload struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// AddItineraryItemRequest is the body of POST /trips/:id/items.
type AddItineraryItemRequest struct {
	GooglePlaceID string           `json:"googlePlaceId"`
	Name          string           `json:"name"`
	Location      *LocationPayload `json:"location"`
	Address       *string          `json:"address"`
	Categories    []string         `json:"categories"`
	DayIndex      *int             `json:"dayIndex" binding:"required"`
	OrderIndex    *int             `json:"orderIndex" binding:"required"`
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
}

// ReplaceItineraryItem is one entry of the bulk itinerary replacement.
type ReplaceItineraryItem struct {
	PlaceID           *string                `json:"placeId"`
	DayIndex          *int                   `json:"dayIndex" binding:"required"`
	OrderIndex        *int                   `json:"orderIndex" binding:"required"`
	Title             *string                `json:"title"`
	Description       *string                `json:"description"`
	PlannedStartAt    *time.Time             `json:"plannedStartAt"`
	PlannedEndAt      *time.Time             `json:"plannedEndAt"`
	TransportSegment  map[string]interface{} `json:"transportSegment"`
	CostEstimate      *float64               `json:"costEstimate"`
	SnapshotLat       *float64               `json:"snapshotLat" binding:"required"`
	SnapshotLng       *float64               `json:"snapshotLng" binding:"required"`
	SnapshotPlaceName *string                `json:"snapshotPlaceName"`
	SnapshotAddress   *string                `json:"snapshotAddress"`
}

// ReplaceItineraryRequest is the body of PUT /trips/:id/itinerary.
type ReplaceItineraryRequest struct {
	Items []ReplaceItineraryItem `json:"items" binding:"required"`
}

// ItineraryItemPatch is the body of PATCH /trips/:id/items/:itemId.
type ItineraryItemPatch struct {
	DayIndex       Optional[int]       `json:"dayIndex"`
	OrderIndex     Optional[int]       `json:"orderIndex"`
	Title          Optional[string]    `json:"title"`
	Description    Optional[string]    `json:"description"`
	PlannedStartAt Optional[time.Time] `json:"plannedStartAt"`
	PlannedEndAt   Optional[time.Time] `json:"plannedEndAt"`
	CostEstimate   Optional[float64]   `json:"costEstimate"`
}

// Empty reports whether the patch carries no keys at all.
func (p ItineraryItemPatch) Empty() bool {
	return !p.DayIndex.Set && !p.OrderIndex.Set && !p.Title.Set &&
		!p.Description.Set && !p.PlannedStartAt.Set && !p.PlannedEndAt.Set &&
		!p.CostEstimate.Set
}

// ItineraryItemUpdate lists the columns an itinerary item update may touch.
type ItineraryItemUpdate struct {
	DayIndex            *int
	OrderIndex          *int
	Title               *string
	ClearTitle          bool
	Description         *string
	ClearDescription    bool
	PlannedStartAt      *time.Time
	ClearPlannedStartAt bool
	PlannedEndAt        *time.Time
	ClearPlannedEndAt   bool
	CostEstimate        *float64
	ClearCostEstimate   bool
}

// AddBudgetItemRequest is the body of POST /trips/:id/budget.
type AddBudgetItemRequest struct {
	Category              string   `json:"category" binding:"required"`
	Title                 string   `json:"title" binding:"required,max=255"`
	Quantity              *int     `json:"quantity" binding:"required"`
	UnitPrice             *float64 `json:"unitPrice" binding:"required"`
	Currency              string   `json:"currency" binding:"required"`
	Source                string   `json:"source" binding:"required"`
	LinkedItineraryItemID *string  `json:"linkedItineraryItemId"`
}

// BudgetItemPatch is the body of PATCH /trips/:id/budget/:bid.
type BudgetItemPatch struct {
	Category              Optional[string]  `json:"category"`
	Title                 Optional[string]  `json:"title"`
	Quantity              Optional[int]     `json:"quantity"`
	UnitPrice             Optional[float64] `json:"unitPrice"`
	Currency              Optional[string]  `json:"currency"`
	Source                Optional[string]  `json:"source"`
	LinkedItineraryItemID Optional[string]  `json:"linkedItineraryItemId"`
}

// Empty reports whether the patch carries no keys at all.
func (p BudgetItemPatch) Empty() bool {
	return !p.Category.Set && !p.Title.Set && !p.Quantity.Set &&
		!p.UnitPrice.Set && !p.Currency.Set && !p.Source.Set &&
		!p.LinkedItineraryItemID.Set
}

// BudgetItemUpdate lists the columns a budget item update may touch.
type BudgetItemUpdate struct {
	Category                   *string
	Title                      *string
	Quantity                   *int
	UnitPrice                  *float64
	Currency                   *string
	Source                     *string
	LinkedItineraryItemID      *string
	ClearLinkedItineraryItemID bool
}

// BudgetCategorySummary is the per-category slice of a budget summary.
type BudgetCategorySummary struct {
	Amount float64 `json:"amount"`
	Items  int     `json:"items"`
}

// BudgetSummary is the aggregate of all budget items of a trip.
type BudgetSummary struct {
	TotalAmount float64                          `json:"totalAmount"`
	Currency    string                           `json:"currency"`
	Categories  map[string]BudgetCategorySummary `json:"categories"`
}

// RecommendOrigin is where a recommended trip starts from.
type RecommendOrigin struct {
	City string   `json:"city" binding:"required"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// RecommendDates is the requested date range.
type RecommendDates struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// RecommendTripRequest is the body of POST /recommendations.
type RecommendTripRequest struct {
	Origin    RecommendOrigin `json:"origin" binding:"required"`
	Dates     RecommendDates  `json:"dates" binding:"required"`
	Budget    *float64        `json:"budget" binding:"required"`
	Interests []string        `json:"interests" binding:"required,min=1"`
	Transport string          `json:"transport" binding:"required"`
	Timezone  string          `json:"timezone"`
	DryRun    bool            `json:"dryRun"`
	Currency  string          `json:"currency"`
	Language  string          `json:"language"`
}

// ShareLinkResponse is the payload of POST /trips/:id/share.
type ShareLinkResponse struct {
	ShareSlug string `json:"shareSlug"`
}
