package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/terminalhome/ims-backend/internal/ledger"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

const (
	defaultReorderPoint = 5
	defaultReorderQty   = 10
)

// GetInventoryHandler returns inventory lines with aggregate stats.
//
// @Summary      List inventory
// @Description  Returns inventory lines, filterable by search text, category and stock status, plus aggregate stats
// @Tags         inventory
// @Produce      json
// @Param        search      query  string  false  "Matches SKU, product name or category"
// @Param        category    query  string  false  "Exact category"
// @Param        stock_status query string  false  "low, out or ok"
// @Param        sort_by     query  string  false  "Sort column"
// @Param        sort_order  query  string  false  "asc or desc"
// @Success      200  {object}  InventoryListResult
// @Failure      500  {string}  string  "failed to fetch inventory"
// @Router       /inventory [get]
func GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	f := repo.InventoryFilter{
		Search:      r.URL.Query().Get("search"),
		Category:    r.URL.Query().Get("category"),
		StockStatus: r.URL.Query().Get("stock_status"),
		SortBy:      r.URL.Query().Get("sort_by"),
		SortOrder:   r.URL.Query().Get("sort_order"),
	}

	lines, err := inventoryRepo.Filter(f)
	if err != nil {
		log.Printf("❌ failed to fetch inventory: %v", err)
		http.Error(w, "failed to fetch inventory", http.StatusInternalServerError)
		return
	}

	stats, err := cachedStats()
	if err != nil {
		log.Printf("❌ failed to fetch inventory stats: %v", err)
		http.Error(w, "failed to fetch inventory stats", http.StatusInternalServerError)
		return
	}

	result := InventoryListResult{Data: []InventoryResponse{}, Stats: stats}
	for _, l := range lines {
		result.Data = append(result.Data, toInventoryResponse(l))
	}
	writeJSON(w, http.StatusOK, result)
}

// GetInventoryLineHandler returns one inventory line.
//
// @Summary      Get inventory line
// @Tags         inventory
// @Produce      json
// @Param        id   path      int  true  "Inventory line ID"
// @Success      200  {object}  InventoryResponse
// @Failure      404  {string}  string  "inventory line not found"
// @Router       /inventory/{id} [get]
func GetInventoryLineHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid inventory line id", http.StatusBadRequest)
		return
	}

	line, err := inventoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrInventoryNotFound) {
			http.Error(w, "inventory line not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ failed to fetch inventory line %d: %v", id, err)
		http.Error(w, "failed to fetch inventory line", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponse(line))
}

// CreateInventoryHandler creates an inventory line. A non-zero initial
// quantity is recorded through the ledger as an inbound movement so the line
// starts with an audit trail instead of an unexplained quantity.
//
// @Summary      Create inventory line
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        line  body      InventoryRequest  true  "Inventory line"
// @Success      201   {object}  InventoryResponse
// @Failure      400   {string}  string  "invalid request payload"
// @Failure      500   {string}  string  "failed to create inventory line"
// @Security     BearerAuth
// @Router       /inventory [post]
func CreateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if errs := validateInventory(req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if req.ReorderPoint == 0 {
		req.ReorderPoint = defaultReorderPoint
	}
	if req.ReorderQty == 0 {
		req.ReorderQty = defaultReorderQty
	}

	line, err := inventoryRepo.Create(models.InventoryLine{
		ProductID:    req.ProductID,
		SKU:          req.SKU,
		ReservedQty:  req.ReservedQty,
		ReorderPoint: req.ReorderPoint,
		ReorderQty:   req.ReorderQty,
		UnitCost:     req.UnitCost,
		Location:     req.Location,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "inventory line already exists for this product", http.StatusConflict)
			return
		}
		log.Printf("❌ failed to create inventory line: %v", err)
		http.Error(w, "failed to create inventory line", http.StatusInternalServerError)
		return
	}

	if req.Quantity > 0 {
		_, updated, err := ledgerSvc.Record(ledger.RecordInput{
			InventoryLineID: line.ID,
			Kind:            models.MovementIn,
			Amount:          req.Quantity,
			Reason:          "Initial stock entry",
		})
		if err != nil {
			log.Printf("❌ failed to record initial stock for line %d: %v", line.ID, err)
			http.Error(w, "failed to record initial stock", http.StatusInternalServerError)
			return
		}
		line = updated
	}

	invalidateStatsCache()
	writeJSON(w, http.StatusCreated, toInventoryResponse(line))
}

// UpdateInventoryHandler updates an inventory line. Non-quantity fields are
// written directly; a changed quantity is routed through the ledger as an
// adjustment so the movement history stays complete.
//
// @Summary      Update inventory line
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Inventory line ID"
// @Param        line  body      InventoryRequest  true  "Inventory line"
// @Success      200   {object}  InventoryResponse
// @Failure      404   {string}  string  "inventory line not found"
// @Security     BearerAuth
// @Router       /inventory/{id} [put]
func UpdateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid inventory line id", http.StatusBadRequest)
		return
	}

	var req InventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if errs := validateInventory(req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	current, err := inventoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrInventoryNotFound) {
			http.Error(w, "inventory line not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ failed to fetch inventory line %d: %v", id, err)
		http.Error(w, "failed to fetch inventory line", http.StatusInternalServerError)
		return
	}

	current.ProductID = req.ProductID
	current.SKU = req.SKU
	current.ReservedQty = req.ReservedQty
	current.ReorderPoint = req.ReorderPoint
	current.ReorderQty = req.ReorderQty
	current.UnitCost = req.UnitCost
	current.Location = req.Location

	line, err := inventoryRepo.Update(current)
	if err != nil {
		log.Printf("❌ failed to update inventory line %d: %v", id, err)
		http.Error(w, "failed to update inventory line", http.StatusInternalServerError)
		return
	}

	if req.Quantity != line.Quantity {
		_, updated, err := ledgerSvc.Record(ledger.RecordInput{
			InventoryLineID: line.ID,
			Kind:            models.MovementAdjustment,
			Amount:          req.Quantity,
			Reason:          "Manual adjustment",
		})
		if err != nil {
			log.Printf("❌ failed to record adjustment for line %d: %v", line.ID, err)
			http.Error(w, "failed to record quantity adjustment", http.StatusInternalServerError)
			return
		}
		line = updated
	}

	invalidateStatsCache()
	writeJSON(w, http.StatusOK, toInventoryResponse(line))
}
