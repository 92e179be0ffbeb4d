package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/terminalhome/ims-backend/internal/http"
	handler "github.com/terminalhome/ims-backend/internal/http/handlers"
	"github.com/terminalhome/ims-backend/internal/models"
)

func TestCreateInventoryHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := createInventoryLine(r, handler.InventoryRequest{
		ProductID:    1,
		SKU:          "TRM-SOF-0001",
		Quantity:     20,
		ReorderPoint: 5,
		ReorderQty:   10,
		UnitCost:     499.99,
		Location:     "Aisle 3",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.InventoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.SKU != "TRM-SOF-0001" {
		t.Errorf("expected SKU 'TRM-SOF-0001', got %v", resp.SKU)
	}
	if resp.Quantity != 20 {
		t.Errorf("expected quantity 20, got %d", resp.Quantity)
	}
	if resp.StockStatus != "ok" {
		t.Errorf("expected stock status 'ok', got %q", resp.StockStatus)
	}

	// The initial quantity must arrive as an inbound movement, not a bare write.
	movements, total, err := movementRepo.Filter(movementFilterFor(resp.ID))
	if err != nil {
		t.Fatalf("listing movements: %v", err)
	}
	if total != 1 || movements[0].Kind != models.MovementIn || movements[0].Amount != 20 {
		t.Errorf("expected one inbound movement of 20, got %+v", movements)
	}
	if movements[0].Reason != "Initial stock entry" {
		t.Errorf("reason = %q", movements[0].Reason)
	}
}

func TestCreateInventoryHandler_Defaults(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := createInventoryLine(r, handler.InventoryRequest{ProductID: 1, SKU: "TRM-LMP-0009"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.InventoryResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.ReorderPoint != 5 || resp.ReorderQty != 10 {
		t.Errorf("expected default thresholds 5/10, got %d/%d", resp.ReorderPoint, resp.ReorderQty)
	}
}

func TestCreateInventoryHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.InventoryRequest
		expectedErrors []string
	}{
		{
			name:           "Missing product and SKU",
			payload:        handler.InventoryRequest{},
			expectedErrors: []string{"ProductID", "SKU"},
		},
		{
			name:           "Negative quantity",
			payload:        handler.InventoryRequest{ProductID: 1, SKU: "TRM-X", Quantity: -1},
			expectedErrors: []string{"Quantity"},
		},
		{
			name:           "Negative unit cost",
			payload:        handler.InventoryRequest{ProductID: 1, SKU: "TRM-X", UnitCost: -2},
			expectedErrors: []string{"UnitCost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createInventoryLine(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.FieldValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, e := range resp {
					if strings.EqualFold(e.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateInventoryHandler_DuplicateSKU(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	mustCreateLine(r, handler.InventoryRequest{ProductID: 1, SKU: "TRM-TBL-0003"})
	w := createInventoryLine(r, handler.InventoryRequest{ProductID: 2, SKU: "TRM-TBL-0003"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestCreateInventoryHandler_RequiresAuth(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	body, _ := json.Marshal(handler.InventoryRequest{ProductID: 1, SKU: "TRM-BED-0001"})
	req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestGetInventoryHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	mustCreateLine(r, handler.InventoryRequest{ProductID: 1, SKU: "TRM-SOF-0001", Quantity: 20, ReorderPoint: 5, UnitCost: 100})
	mustCreateLine(r, handler.InventoryRequest{ProductID: 2, SKU: "TRM-CHR-0001", Quantity: 2, ReorderPoint: 5, UnitCost: 50})

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.InventoryListResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(resp.Data))
	}
	if resp.Stats.TotalItems != 2 {
		t.Errorf("stats total items = %d, want 2", resp.Stats.TotalItems)
	}
	if resp.Stats.TotalValue != 20*100+2*50 {
		t.Errorf("stats total value = %v, want 2100", resp.Stats.TotalValue)
	}
	if resp.Stats.LowStockCount != 1 {
		t.Errorf("stats low stock count = %d, want 1", resp.Stats.LowStockCount)
	}
}

func TestGetInventoryHandler_StockStatusFilter(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	mustCreateLine(r, handler.InventoryRequest{ProductID: 1, SKU: "TRM-SOF-0001", Quantity: 20, ReorderPoint: 5})
	mustCreateLine(r, handler.InventoryRequest{ProductID: 2, SKU: "TRM-CHR-0001", Quantity: 2, ReorderPoint: 5})
	mustCreateLine(r, handler.InventoryRequest{ProductID: 3, SKU: "TRM-LMP-0001", Quantity: 0, ReorderPoint: 5})

	for status, wantSKU := range map[string]string{"low": "TRM-CHR-0001", "out": "TRM-LMP-0001"} {
		req := httptest.NewRequest(http.MethodGet, "/inventory?stock_status="+status, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var resp handler.InventoryListResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if len(resp.Data) != 1 || resp.Data[0].SKU != wantSKU {
			t.Errorf("filter %q returned %+v, want only %s", status, resp.Data, wantSKU)
		}
	}
}

func TestGetInventoryLineHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/inventory/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestUpdateInventoryHandler_QuantityChangeBecomesAdjustment(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	line := mustCreateLine(r, handler.InventoryRequest{ProductID: 1, SKU: "TRM-DSK-0001", Quantity: 10, ReorderPoint: 3, ReorderQty: 5, UnitCost: 200})

	body, _ := json.Marshal(handler.InventoryRequest{
		ProductID: 1, SKU: "TRM-DSK-0001", Quantity: 25, ReorderPoint: 3, ReorderQty: 5, UnitCost: 210, Location: "Warehouse B",
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/inventory/%d", line.ID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.InventoryResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Quantity != 25 || resp.UnitCost != 210 || resp.Location != "Warehouse B" {
		t.Errorf("updated line = %+v", resp)
	}

	movements, _, err := movementRepo.Filter(movementFilterFor(line.ID))
	if err != nil {
		t.Fatalf("listing movements: %v", err)
	}
	// initial stock entry plus the adjustment, newest first
	if len(movements) != 2 || movements[0].Kind != models.MovementAdjustment || movements[0].Amount != 25 {
		t.Errorf("movements = %+v", movements)
	}
}
