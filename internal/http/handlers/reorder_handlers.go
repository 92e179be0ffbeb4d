package handlers

import (
	"log"
	"net/http"
)

// CheckReorderHandler sweeps the inventory against the active reorder rules
// and returns purchasing suggestions. Qualifying lines also get their alerts
// evaluated as a side effect of the sweep.
//
// @Summary      Run reorder check
// @Tags         reorder
// @Produce      json
// @Success      200  {object}  reorder.Result
// @Failure      500  {string}  string  "failed to compute reorder suggestions"
// @Security     BearerAuth
// @Router       /reorder/check [post]
func CheckReorderHandler(w http.ResponseWriter, r *http.Request) {
	result, err := advisor.ComputeSuggestions()
	if err != nil {
		log.Printf("❌ failed to compute reorder suggestions: %v", err)
		http.Error(w, "failed to compute reorder suggestions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
