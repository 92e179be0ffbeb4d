package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/terminalhome/ims-backend/internal/http"
	handler "github.com/terminalhome/ims-backend/internal/http/handlers"
	"github.com/terminalhome/ims-backend/internal/repo"
)

func TestGetDashboardStatsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	line := mustCreateLine(r, handler.InventoryRequest{ProductID: 1, SKU: "TRM-SOF-0009", Quantity: 10, ReorderPoint: 5, UnitCost: 100})
	mustCreateLine(r, handler.InventoryRequest{ProductID: 2, SKU: "TRM-CHR-0009", Quantity: 0, ReorderPoint: 5, UnitCost: 40})

	if w := recordMovement(r, handler.MovementRequest{InventoryLineID: line.ID, Kind: "out", Amount: 8}); w.Code != http.StatusCreated {
		t.Fatalf("seeding movement: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var stats repo.Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if stats.TotalItems != 2 {
		t.Errorf("total items = %d, want 2", stats.TotalItems)
	}
	if stats.TotalValue != 2*100 {
		t.Errorf("total value = %v, want 200", stats.TotalValue)
	}
	if stats.LowStockCount != 1 || stats.OutOfStockCount != 1 {
		t.Errorf("stock counts = %d low / %d out, want 1/1", stats.LowStockCount, stats.OutOfStockCount)
	}
	// the initial stock entry plus the sale
	if stats.TotalMovements != 2 {
		t.Errorf("total movements = %d, want 2", stats.TotalMovements)
	}
	if stats.OpenAlertCount != 1 {
		t.Errorf("open alerts = %d, want 1", stats.OpenAlertCount)
	}
}
