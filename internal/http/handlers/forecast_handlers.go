package handlers

import (
	"log"
	"net/http"
)

// GetForecastHandler returns the 30-day demand forecast. A fresh stored run
// is served as cached unless refresh=true forces regeneration.
//
// @Summary      Demand forecast
// @Tags         forecast
// @Produce      json
// @Param        refresh  query  bool  false  "Force regeneration"
// @Success      200  {object}  forecast.Result
// @Failure      500  {string}  string  "failed to produce forecast"
// @Router       /forecast [get]
func GetForecastHandler(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	result, err := orchestrator.Run(r.Context(), forceRefresh)
	if err != nil {
		log.Printf("❌ failed to produce forecast: %v", err)
		http.Error(w, "failed to produce forecast", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
