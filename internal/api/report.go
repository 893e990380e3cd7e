package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/report"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/store"
)

// GetReport renders the per-property actual-vs-budget report.
// GET /api/report
func (h *Handler) GetReport(c *gin.Context) {
	actualRows, err := h.refreshActualCache()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch actual table: " + err.Error()})
		return
	}

	budgetRows, err := h.backend.Table(h.cfg.Store.BudgetTable).ReadAllRows()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch budget table: " + err.Error()})
		return
	}

	result := report.Merge(actualRows, budgetRows, report.MergeConfig{
		BudgetDateLayout: h.cfg.Ingest.BudgetDateLayout,
	})

	if result.EmptyReason != "" {
		c.JSON(http.StatusOK, gin.H{
			"columns":    report.Columns,
			"properties": []string{},
			"tabs":       gin.H{},
			"message":    result.EmptyReason,
		})
		return
	}

	tabs := report.Present(result.Rows)

	properties := make([]string, 0, len(tabs))
	for property := range tabs {
		properties = append(properties, property)
	}
	sort.Strings(properties)

	c.JSON(http.StatusOK, gin.H{
		"columns":    report.Columns,
		"properties": properties,
		"tabs":       tabs,
	})
}

// ListProperties lists the properties present in the merged report.
// GET /api/properties
func (h *Handler) ListProperties(c *gin.Context) {
	actualRows, err := h.cachedActualRows()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	seen := make(map[string]struct{})
	properties := []string{}
	for _, row := range store.DecodeRows(actualRows, store.DecodeOptions{}) {
		if _, ok := seen[row.Property]; !ok {
			seen[row.Property] = struct{}{}
			properties = append(properties, row.Property)
		}
	}
	sort.Strings(properties)

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// ListMonths lists the month-year periods available in the actual table,
// for the dashboard's month selector.
// GET /api/months
func (h *Handler) ListMonths(c *gin.Context) {
	actualRows, err := h.cachedActualRows()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	decoded := store.DecodeRows(actualRows, store.DecodeOptions{})
	sort.Slice(decoded, func(i, j int) bool { return decoded[i].Date.Before(decoded[j].Date) })

	seen := make(map[string]struct{})
	months := []string{}
	for _, row := range decoded {
		my := row.MonthYear()
		if _, ok := seen[my]; !ok {
			seen[my] = struct{}{}
			months = append(months, my)
		}
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}
