package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus reports backend health and table sizes.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	status := gin.H{
		"backend":     h.cfg.Store.Backend,
		"actualTable": h.cfg.Store.ActualTable,
		"budgetTable": h.cfg.Store.BudgetTable,
	}

	actualRows, err := h.backend.Table(h.cfg.Store.ActualTable).ReadAllRows()
	if err != nil {
		status["actualError"] = err.Error()
	} else if len(actualRows) > 0 {
		status["actualRows"] = len(actualRows) - 1 // minus header
	} else {
		status["actualRows"] = 0
	}

	budgetRows, err := h.backend.Table(h.cfg.Store.BudgetTable).ReadAllRows()
	if err != nil {
		status["budgetError"] = err.Error()
	} else if len(budgetRows) > 0 {
		status["budgetRows"] = len(budgetRows) - 1
	} else {
		status["budgetRows"] = 0
	}

	c.JSON(http.StatusOK, status)
}
