package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/terminalhome/ims-backend/internal/ledger"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

const maxExportPageSize = 200

// RecordMovementHandler records one stock movement through the ledger and
// returns the movement together with the post-write inventory line.
//
// @Summary      Record stock movement
// @Description  Applies an in, out, adjustment or return movement to an inventory line
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        movement  body      MovementRequest  true  "Movement"
// @Success      201       {object}  MovementRecordResult
// @Failure      400       {string}  string  "invalid movement"
// @Failure      404       {string}  string  "inventory line not found"
// @Security     BearerAuth
// @Router       /movements [post]
func RecordMovementHandler(w http.ResponseWriter, r *http.Request) {
	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if errs := validateMovement(req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	movement, line, err := ledgerSvc.Record(ledger.RecordInput{
		InventoryLineID: req.InventoryLineID,
		Kind:            models.MovementKind(req.Kind),
		Amount:          req.Amount,
		Reason:          req.Reason,
		Reference:       req.Reference,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrUnknownKind):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repo.ErrInventoryNotFound):
			http.Error(w, "inventory line not found", http.StatusNotFound)
		default:
			log.Printf("❌ failed to record movement: %v", err)
			http.Error(w, "failed to record movement", http.StatusInternalServerError)
		}
		return
	}

	invalidateStatsCache()
	writeJSON(w, http.StatusCreated, MovementRecordResult{
		Movement:      toMovementResponse(movement),
		InventoryLine: toInventoryResponse(line),
	})
}

// GetMovementsHandler lists movements, newest first.
//
// @Summary      List stock movements
// @Tags         movements
// @Produce      json
// @Param        inventory_line_id  query  int     false  "Filter by inventory line"
// @Param        kind               query  string  false  "in, out, adjustment or return"
// @Param        since              query  string  false  "RFC3339 lower bound"
// @Param        until              query  string  false  "RFC3339 upper bound"
// @Param        offset             query  int     false  "Pagination offset"
// @Param        limit              query  int     false  "Page size, max 200"
// @Success      200  {object}  MovementsSearchResult
// @Failure      400  {string}  string  "invalid query parameter"
// @Router       /movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseMovementFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	movements, total, err := movementRepo.Filter(f)
	if err != nil {
		log.Printf("❌ failed to fetch movements: %v", err)
		http.Error(w, "failed to fetch movements", http.StatusInternalServerError)
		return
	}

	result := MovementsSearchResult{Data: []MovementResponse{}, Meta: Meta{TotalCount: total}}
	for _, m := range movements {
		result.Data = append(result.Data, toMovementResponse(m))
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportMovementsHandler streams the filtered movement history as CSV.
//
// @Summary      Export stock movements
// @Tags         movements
// @Produce      text/csv
// @Param        inventory_line_id  query  int     false  "Filter by inventory line"
// @Param        kind               query  string  false  "in, out, adjustment or return"
// @Param        since              query  string  false  "RFC3339 lower bound"
// @Param        until              query  string  false  "RFC3339 upper bound"
// @Success      200  {string}  string  "CSV payload"
// @Router       /movements/export [get]
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseMovementFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The export covers the whole filtered history, paging past the
	// repository's result cap.
	var movements []models.StockMovement
	pageSize := maxExportPageSize
	f.Limit = &pageSize
	for offset := 0; ; offset += pageSize {
		f.Offset = &offset
		page, total, err := movementRepo.Filter(f)
		if err != nil {
			log.Printf("❌ failed to fetch movements for export: %v", err)
			http.Error(w, "failed to fetch movements", http.StatusInternalServerError)
			return
		}
		movements = append(movements, page...)
		if len(page) == 0 || len(movements) >= total {
			break
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="stock_movements.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "inventory_line_id", "kind", "amount", "reason", "reference", "created_at"})
	for _, m := range movements {
		_ = cw.Write([]string{
			strconv.Itoa(m.ID),
			strconv.Itoa(m.InventoryLineID),
			string(m.Kind),
			strconv.Itoa(m.Amount),
			m.Reason,
			m.Reference,
			m.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("❌ failed to write movements CSV: %v", err)
	}
}

func parseMovementFilter(r *http.Request) (repo.MovementFilter, error) {
	var f repo.MovementFilter
	q := r.URL.Query()

	if v := q.Get("inventory_line_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("invalid inventory_line_id %q", v)
		}
		f.InventoryLineID = &id
	}
	if v := q.Get("kind"); v != "" {
		kind := models.MovementKind(v)
		if !kind.Valid() {
			return f, fmt.Errorf("invalid kind %q", v)
		}
		f.Kind = &kind
	}
	for name, dst := range map[string]**time.Time{"since": &f.Since, "until": &f.Until} {
		if v := q.Get(name); v != "" {
			// '+' in an unescaped RFC3339 offset arrives as a space
			t, err := time.Parse(time.RFC3339, strings.Replace(v, " ", "+", 1))
			if err != nil {
				return f, fmt.Errorf("invalid %s timestamp %q", name, v)
			}
			*dst = &t
		}
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return f, fmt.Errorf("invalid offset %q", v)
		}
		f.Offset = &offset
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return f, fmt.Errorf("invalid limit %q", v)
		}
		f.Limit = &limit
	}
	return f, nil
}
