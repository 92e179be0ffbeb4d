package repo

import (
	"sync"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type InMemoryForecastRepository struct {
	mu        sync.Mutex
	forecasts []models.DemandForecast
	nextID    int
}

func NewInMemoryForecastRepository() *InMemoryForecastRepository {
	return &InMemoryForecastRepository{nextID: 1}
}

func (r *InMemoryForecastRepository) Create(f models.DemandForecast) (models.DemandForecast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.nextID
	r.nextID++
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	r.forecasts = append(r.forecasts, f)
	return f, nil
}

func (r *InMemoryForecastRepository) CreatedSince(t time.Time) ([]models.DemandForecast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DemandForecast
	for i := len(r.forecasts) - 1; i >= 0; i-- {
		if !r.forecasts[i].CreatedAt.Before(t) {
			out = append(out, r.forecasts[i])
		}
	}
	return out, nil
}

func (r *InMemoryForecastRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forecasts = nil
	r.nextID = 1
}
