package utils

const (
	// Share slug generation
	SlugCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	SlugLength  = 8

	// Maximum regeneration attempts when a slug collides
	SlugMaxAttempts = 5

	// Trip status
	StatusDraft = "draft"
	StatusFinal = "final"

	// Trip visibility
	VisibilityPrivate  = "private"
	VisibilityUnlisted = "unlisted"
	VisibilityPublic   = "public"

	// Budget item sources
	SourceAI          = "ai"
	SourceUser        = "user"
	SourceIntegration = "integration"

	// Defaults
	DefaultCurrency = "USD"

	// HTTP status messages
	ErrInvalidRequest = "Invalid request"
	ErrAuthRequired   = "User authentication required"
	ErrTripNotShared  = "Trip not found or not shared"

	// Map rendering
	MapBorderColor  = "#FFFFFF"
	UnnamedLocation = "Unnamed location"
)

// MapPinPalette is the fixed palette markers cycle through by day index.
var MapPinPalette = [...]string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#FFA07A",
	"#98D8C8",
	"#F7DC6F",
}

// TransportModes lists the transport modes a trip can carry.
var TransportModes = []string{"car", "public", "bike", "walk"}

// BudgetCategories lists the valid budget item categories.
var BudgetCategories = []string{"transport", "stay", "food", "activities", "other"}
