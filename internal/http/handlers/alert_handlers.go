package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/terminalhome/ims-backend/internal/models"
)

// GetAlertsHandler lists stock alerts, newest first.
//
// @Summary      List stock alerts
// @Tags         alerts
// @Produce      json
// @Param        unread_only  query  bool  false  "Only unread alerts"
// @Success      200  {array}   models.StockAlert
// @Failure      500  {string}  string  "failed to fetch alerts"
// @Router       /alerts [get]
func GetAlertsHandler(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	alerts, err := alertEngine.List(unreadOnly)
	if err != nil {
		log.Printf("❌ failed to fetch alerts: %v", err)
		http.Error(w, "failed to fetch alerts", http.StatusInternalServerError)
		return
	}
	if alerts == nil {
		alerts = []models.StockAlert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// MarkAlertsReadHandler marks alerts as read. The ids field accepts either
// the string "all" or a list of alert ids. Read state is separate from
// resolution; this never resolves anything.
//
// @Summary      Mark alerts read
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        request  body      MarkAlertsReadRequest  true  "Alert ids or \"all\""
// @Success      200      {object}  map[string]string
// @Failure      400      {string}  string  "invalid request payload"
// @Security     BearerAuth
// @Router       /alerts/read [put]
func MarkAlertsReadHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs json.RawMessage `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	var all string
	var ids []int
	if err := json.Unmarshal(req.IDs, &all); err == nil {
		if all != "all" {
			http.Error(w, `ids must be "all" or a list of alert ids`, http.StatusBadRequest)
			return
		}
		if err := alertEngine.MarkRead(nil, true); err != nil {
			log.Printf("❌ failed to mark alerts read: %v", err)
			http.Error(w, "failed to mark alerts read", http.StatusInternalServerError)
			return
		}
	} else if err := json.Unmarshal(req.IDs, &ids); err == nil {
		if len(ids) == 0 {
			http.Error(w, "ids list is empty", http.StatusBadRequest)
			return
		}
		if err := alertEngine.MarkRead(ids, false); err != nil {
			log.Printf("❌ failed to mark alerts read: %v", err)
			http.Error(w, "failed to mark alerts read", http.StatusInternalServerError)
			return
		}
	} else {
		http.Error(w, `ids must be "all" or a list of alert ids`, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "alerts marked as read"})
}
