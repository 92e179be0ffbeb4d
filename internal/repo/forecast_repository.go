package repo

import (
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

// ForecastRepository stores demand forecast rows. Rows are write-once;
// CreatedSince implements the freshness window check.
type ForecastRepository interface {
	Create(f models.DemandForecast) (models.DemandForecast, error)
	CreatedSince(t time.Time) ([]models.DemandForecast, error)
}
