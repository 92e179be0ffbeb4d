package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/terminalhome/ims-backend/internal/repo"
)

const (
	statsCacheKey = "inventory:stats"
	statsCacheTTL = 30 * time.Second
)

// cachedStats serves the aggregate stats block from redis when present,
// recomputing and re-caching on a miss. Without a redis client it reads
// straight from the repository.
func cachedStats() (repo.Stats, error) {
	if Rdb != nil {
		if cached, err := Rdb.Get(Ctx, statsCacheKey).Result(); err == nil {
			var stats repo.Stats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := statsRepo.GetStats()
	if err != nil {
		return repo.Stats{}, err
	}

	if Rdb != nil {
		payload, err := json.Marshal(stats)
		if err == nil {
			if err := Rdb.Set(Ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Printf("⚠️ failed to cache stats: %v", err)
			}
		}
	}
	return stats, nil
}

func invalidateStatsCache() {
	if Rdb == nil {
		return
	}
	if err := Rdb.Del(Ctx, statsCacheKey).Err(); err != nil {
		log.Printf("⚠️ failed to invalidate stats cache: %v", err)
	}
}

// GetDashboardStatsHandler returns the aggregate dashboard metrics.
//
// @Summary      Dashboard metrics
// @Description  Aggregate inventory value, stock status counts, movement and open alert totals
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  repo.Stats
// @Failure      500  {string}  string  "failed to fetch stats"
// @Router       /metrics/dashboard [get]
func GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := cachedStats()
	if err != nil {
		log.Printf("❌ failed to fetch stats: %v", err)
		http.Error(w, "failed to fetch stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
