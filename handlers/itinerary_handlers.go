package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// AddItineraryItem handles POST /trips/:id/items
func (h *Handler) AddItineraryItem(c *gin.Context) {
	var request models.AddItineraryItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	item, err := h.Itineraries.AddItem(c.Param("id"), &request, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusCreated, gin.H{"item": item})
}

// ReplaceItinerary handles PUT /trips/:id/itinerary
func (h *Handler) ReplaceItinerary(c *gin.Context) {
	var request models.ReplaceItineraryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.Itineraries.ReplaceItinerary(c.Param("id"), &request, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"items": items})
}

// UpdateItineraryItem handles PATCH /trips/:id/items/:itemId
func (h *Handler) UpdateItineraryItem(c *gin.Context) {
	var patch models.ItineraryItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	item, err := h.Itineraries.UpdateItem(c.Param("id"), c.Param("itemId"), patch, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"item": item})
}
