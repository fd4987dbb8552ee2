package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripplanhq/tripplan-backend/handlers"
	"github.com/tripplanhq/tripplan-backend/middleware"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, h *handlers.Handler) {
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.StaticFile("/docs/openapi.yaml", "./docs/openapi.yaml")

	v1 := router.Group("/api/v1")
	v1.Use(middleware.UserContext())

	// Share-slug reads are the only trip access without caller identity
	v1.GET("/public/trips/:shareSlug", h.GetPublicTrip)

	authed := v1.Group("")
	authed.Use(middleware.RequireAuth())
	{
		// Trip endpoints
		authed.POST("/trips", h.CreateTrip)
		authed.GET("/trips", h.ListTrips)
		authed.GET("/users/:userId/trips", h.ListUserTrips)
		authed.GET("/trips/:id", h.GetTrip)
		authed.PATCH("/trips/:id", h.UpdateTrip)
		authed.DELETE("/trips/:id", h.DeleteTrip)
		authed.POST("/trips/:id/clone", h.CloneTrip)
		authed.POST("/trips/:id/share", h.ShareTrip)

		// Itinerary endpoints
		authed.POST("/trips/:id/items", h.AddItineraryItem)
		authed.PATCH("/trips/:id/items/:itemId", h.UpdateItineraryItem)
		authed.PUT("/trips/:id/itinerary", h.ReplaceItinerary)

		// Map endpoint
		authed.GET("/trips/:id/map", h.GetTripMap)

		// Budget endpoints
		authed.POST("/trips/:id/budget", h.AddBudgetItem)
		authed.GET("/trips/:id/budget", h.ListBudgetItems)
		authed.PATCH("/trips/:id/budget/:bid", h.UpdateBudgetItem)
		authed.GET("/trips/:id/budget/summary", h.GetBudgetSummary)
		authed.GET("/trips/:id/budget/export", h.ExportBudget)

		// Recommendation endpoint; mounted off /trips to keep the
		// wildcard :id tree unambiguous
		authed.POST("/recommendations", h.RecommendTrip)
	}
}
