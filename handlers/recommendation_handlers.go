package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// RecommendTrip handles POST /recommendations
func (h *Handler) RecommendTrip(c *gin.Context) {
	var request models.RecommendTripRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.Recommendations.Recommend(&request, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, result)
}
