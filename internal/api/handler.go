package api

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/config"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/store"
)

// Handler serves the dashboard API.
type Handler struct {
	cfg     *config.AppConfig
	backend store.Backend

	// Last-fetched actual table, owned here and refreshed on upload
	// completion and report render. The month selector reads it without
	// another round trip to the store.
	cacheMu       sync.Mutex
	actualRows    [][]string
	actualFetched time.Time
}

// NewHandler creates the API handler over a table-store backend.
func NewHandler(cfg *config.AppConfig, backend store.Backend) *Handler {
	return &Handler{
		cfg:     cfg,
		backend: backend,
	}
}

// RegisterRoutes mounts the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system state
	router.GET("/status", h.GetStatus)
	router.GET("/months", h.ListMonths)

	// configuration
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// data ingestion
	router.POST("/upload", h.Upload)

	// reporting
	router.GET("/report", h.GetReport)
	router.GET("/properties", h.ListProperties)
}

// refreshActualCache re-reads the actual table and caches the raw rows.
func (h *Handler) refreshActualCache() ([][]string, error) {
	rows, err := h.backend.Table(h.cfg.Store.ActualTable).ReadAllRows()
	if err != nil {
		return nil, err
	}

	h.cacheMu.Lock()
	h.actualRows = rows
	h.actualFetched = time.Now()
	h.cacheMu.Unlock()

	return rows, nil
}

// cachedActualRows returns the cached actual table, fetching on first use.
func (h *Handler) cachedActualRows() ([][]string, error) {
	h.cacheMu.Lock()
	rows := h.actualRows
	h.cacheMu.Unlock()

	if rows != nil {
		return rows, nil
	}
	return h.refreshActualCache()
}
