package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/middleware"
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/services"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// Handler carries all service dependencies for the HTTP layer.
type Handler struct {
	Trips           *services.TripService
	Itineraries     *services.ItineraryService
	Budgets         *services.BudgetService
	Maps            *services.MapService
	Recommendations *services.RecommendationService
	Exports         *services.ExportService
	AI              *services.AIClient
	Log             logger.Logger
}

// New creates a new Handler
func New(
	trips *services.TripService,
	itineraries *services.ItineraryService,
	budgets *services.BudgetService,
	maps *services.MapService,
	recommendations *services.RecommendationService,
	exports *services.ExportService,
	ai *services.AIClient,
	log logger.Logger,
) *Handler {
	return &Handler{
		Trips:           trips,
		Itineraries:     itineraries,
		Budgets:         budgets,
		Maps:            maps,
		Recommendations: recommendations,
		Exports:         exports,
		AI:              ai,
		Log:             log,
	}
}

// Health reports service liveness and the AI dependency's reachability.
func (h *Handler) Health(c *gin.Context) {
	aiStatus := "unavailable"
	if h.AI != nil && h.AI.HealthCheck() {
		aiStatus = "ok"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"dependencies": gin.H{
			"aiRecommendationService": aiStatus,
		},
	})
}

// currentUser returns the authenticated caller. Routes behind
// RequireAuth always have one; the empty check is for the handful of
// handlers mounted outside it.
func currentUser(c *gin.Context) *models.UserContext {
	return middleware.GetUser(c)
}

func requireUser(c *gin.Context) (*models.UserContext, bool) {
	user := currentUser(c)
	if user == nil {
		utils.HandleError(c, utils.NewUnauthorizedError(utils.ErrAuthRequired))
		return nil, false
	}
	return user, true
}
