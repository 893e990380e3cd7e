package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/config"
)

// ConfigResponse is the client-editable configuration view. Store backend
// selection is deployment-time only and not exposed for editing.
type ConfigResponse struct {
	ActualTable      string              `json:"actualTable"`
	BudgetTable      string              `json:"budgetTable"`
	ReplacePolicy    string              `json:"replacePolicy"`
	ForecastMarker   string              `json:"forecastMarker"`
	BudgetDateLayout string              `json:"budgetDateLayout"`
	ColumnSynonyms   map[string][]string `json:"columnSynonyms"`
}

// GetConfig returns the editable configuration.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		ActualTable:      h.cfg.Store.ActualTable,
		BudgetTable:      h.cfg.Store.BudgetTable,
		ReplacePolicy:    h.cfg.Ingest.ReplacePolicy,
		ForecastMarker:   h.cfg.Ingest.ForecastMarker,
		BudgetDateLayout: h.cfg.Ingest.BudgetDateLayout,
		ColumnSynonyms:   h.cfg.Ingest.ColumnSynonyms,
	})
}

// UpdateConfigRequest carries a partial configuration update.
type UpdateConfigRequest struct {
	ActualTable      *string             `json:"actualTable"`
	BudgetTable      *string             `json:"budgetTable"`
	ReplacePolicy    *string             `json:"replacePolicy"`
	ForecastMarker   *string             `json:"forecastMarker"`
	BudgetDateLayout *string             `json:"budgetDateLayout"`
	ColumnSynonyms   map[string][]string `json:"columnSynonyms"`
}

// UpdateConfig applies a partial update and persists it.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.ActualTable != nil && *req.ActualTable != "" {
		h.cfg.Store.ActualTable = *req.ActualTable
	}
	if req.BudgetTable != nil && *req.BudgetTable != "" {
		h.cfg.Store.BudgetTable = *req.BudgetTable
	}
	if req.ReplacePolicy != nil {
		policy := *req.ReplacePolicy
		if policy != "date" && policy != "month" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "replacePolicy must be \"date\" or \"month\""})
			return
		}
		h.cfg.Ingest.ReplacePolicy = policy
	}
	if req.ForecastMarker != nil {
		h.cfg.Ingest.ForecastMarker = *req.ForecastMarker
	}
	if req.BudgetDateLayout != nil && *req.BudgetDateLayout != "" {
		h.cfg.Ingest.BudgetDateLayout = *req.BudgetDateLayout
	}
	if req.ColumnSynonyms != nil {
		h.cfg.Ingest.ColumnSynonyms = req.ColumnSynonyms
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save config: " + err.Error()})
		return
	}

	h.GetConfig(c)
}
