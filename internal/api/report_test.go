package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/config"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/store"
)

func newTestRouter(backend store.Backend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(config.DefaultConfig(), backend)
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func seedActual(backend *store.MemoryBackend) {
	backend.Seed("Actual_25-26", [][]string{
		{"Property", "Date", "Total Occ", "ADR", "Revenue", "Label", "Month-Year", "Pickup Occ", "Pickup Revenue"},
		{"Alpha", "01-Jul-2025", "110", "100", "11000", "History", "Jul-2025", "0", "0"},
		{"Alpha", "02-Jul-2025", "120", "100", "12000", "Forecast", "Jul-2025", "5", "500"},
	})
}

func TestGetReport(t *testing.T) {
	backend := store.NewMemory()
	seedActual(backend)
	backend.Seed("Budget_25-26", [][]string{
		{"Property", "Date", "Total Occ", "Label"},
		{"Alpha", "1-Jul-25", "100", "History"},
		{"Alpha", "2-Jul-25", "100", "Forecast"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	newTestRouter(backend).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Properties []string `json:"properties"`
		Tabs       map[string][]struct {
			Cells map[string]string `json:"cells"`
			Kind  string            `json:"kind"`
		} `json:"tabs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Properties) != 1 || resp.Properties[0] != "Alpha" {
		t.Fatalf("unexpected properties %v", resp.Properties)
	}

	alpha := resp.Tabs["Alpha"]
	if len(alpha) != 5 { // 2 data + 3 synthetic
		t.Fatalf("want 5 rows, got %d", len(alpha))
	}
	if alpha[0].Cells["Actual Occ"] != "110" || alpha[0].Cells["Budget Occ"] != "100" {
		t.Fatalf("unexpected first row %v", alpha[0].Cells)
	}
	if alpha[4].Kind != "total" {
		t.Fatalf("last row must be the total, got %s", alpha[4].Kind)
	}
}

func TestGetReport_EmptyDatasetExplainsItself(t *testing.T) {
	backend := store.NewMemory()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	newTestRouter(backend).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("empty data is not an error: status %d", w.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message == "" {
		t.Fatalf("empty dataset needs a user-visible message")
	}
}

func TestListMonths(t *testing.T) {
	backend := store.NewMemory()
	seedActual(backend)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/months", nil)
	newTestRouter(backend).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp struct {
		Months []string `json:"months"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Months) != 1 || resp.Months[0] != "Jul-2025" {
		t.Fatalf("unexpected months %v", resp.Months)
	}
}

func TestGetStatus(t *testing.T) {
	backend := store.NewMemory()
	seedActual(backend)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	newTestRouter(backend).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["actualRows"].(float64) != 2 {
		t.Fatalf("unexpected actualRows %v", resp["actualRows"])
	}
}
