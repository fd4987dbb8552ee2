package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// CreateTrip handles POST /trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var request models.CreateTripRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	trip, err := h.Trips.CreateTrip(&user.ID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusCreated, gin.H{"trip": trip})
}

// GetTrip handles GET /trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	trip, err := h.Trips.GetTrip(c.Param("id"), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"trip": trip})
}

// ListTrips handles GET /trips
func (h *Handler) ListTrips(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		userID = user.ID
	}

	trips, err := h.Trips.GetUserTrips(userID, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"trips": trips})
}

// ListUserTrips handles GET /users/:userId/trips
func (h *Handler) ListUserTrips(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	trips, err := h.Trips.GetUserTrips(c.Param("userId"), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"trips": trips})
}

// UpdateTrip handles PATCH /trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	var patch models.TripPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	trip, err := h.Trips.UpdateTrip(c.Param("id"), patch, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"trip": trip})
}

// DeleteTrip handles DELETE /trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.Trips.DeleteTrip(c.Param("id"), user.ID); err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CloneTrip handles POST /trips/:id/clone
func (h *Handler) CloneTrip(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	clone, err := h.Trips.CloneTrip(c.Param("id"), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusCreated, gin.H{"trip": clone})
}

// ShareTrip handles POST /trips/:id/share
func (h *Handler) ShareTrip(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	slug, err := h.Trips.CreateShareLink(c.Param("id"), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, models.ShareLinkResponse{ShareSlug: slug})
}

// GetPublicTrip handles GET /public/trips/:shareSlug, the only trip
// read that requires no caller identity.
func (h *Handler) GetPublicTrip(c *gin.Context) {
	trip, err := h.Trips.GetTripByShareSlug(c.Param("shareSlug"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"trip": trip})
}

// GetTripMap handles GET /trips/:id/map
func (h *Handler) GetTripMap(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	tripID := c.Param("id")
	if _, err := h.Trips.GetTrip(tripID, user.ID); err != nil {
		utils.HandleError(c, err)
		return
	}

	mapData, err := h.Maps.GetTripMapData(tripID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, mapData)
}
