package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// AddBudgetItem handles POST /trips/:id/budget
func (h *Handler) AddBudgetItem(c *gin.Context) {
	var request models.AddBudgetItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	item, err := h.Budgets.AddItem(c.Param("id"), &request, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusCreated, gin.H{"budgetItem": item})
}

// UpdateBudgetItem handles PATCH /trips/:id/budget/:bid. Budget items
// are addressed by their own id; the trip segment is path context only.
func (h *Handler) UpdateBudgetItem(c *gin.Context) {
	var patch models.BudgetItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	item, err := h.Budgets.UpdateItem(c.Param("bid"), patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"budgetItem": item})
}

// GetBudgetSummary handles GET /trips/:id/budget/summary
func (h *Handler) GetBudgetSummary(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.Budgets.GetSummary(c.Param("id"), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, summary)
}

// ListBudgetItems handles GET /trips/:id/budget
func (h *Handler) ListBudgetItems(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.Budgets.ListItems(c.Param("id"), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, http.StatusOK, gin.H{"budgetItems": items})
}
