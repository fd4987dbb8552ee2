package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/tripplanhq/tripplan-backend/utils"
)

// ExportBudget handles GET /trips/:id/budget/export and streams the
// workbook as a download.
func (h *Handler) ExportBudget(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	excelFile, filename, err := h.Exports.ExportBudgetToExcel(c.Param("id"), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		h.Log.Error("failed to write budget export", "tripId", c.Param("id"), "error", err)
	}
}
