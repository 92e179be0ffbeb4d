package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type PostgresForecastRepository struct {
	db *sql.DB
}

func NewPostgresForecastRepository(db *sql.DB) *PostgresForecastRepository {
	return &PostgresForecastRepository{db: db}
}

func (r *PostgresForecastRepository) Create(f models.DemandForecast) (models.DemandForecast, error) {
	query := `INSERT INTO demand_forecasts (product_name, sku, forecast_date, predicted_qty, confidence, seasonality, trend, factors, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, query, f.ProductName, f.SKU, f.ForecastDate, f.PredictedQty,
		f.Confidence, f.Seasonality, f.Trend, f.Factors, f.CreatedAt).Scan(&f.ID)
	return f, err
}

func (r *PostgresForecastRepository) CreatedSince(t time.Time) ([]models.DemandForecast, error) {
	query := `SELECT id, product_name, sku, forecast_date, predicted_qty, confidence, seasonality, trend, factors, created_at
		FROM demand_forecasts WHERE created_at >= $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forecasts []models.DemandForecast
	for rows.Next() {
		var f models.DemandForecast
		if err := rows.Scan(&f.ID, &f.ProductName, &f.SKU, &f.ForecastDate, &f.PredictedQty,
			&f.Confidence, &f.Seasonality, &f.Trend, &f.Factors, &f.CreatedAt); err != nil {
			return nil, err
		}
		forecasts = append(forecasts, f)
	}
	return forecasts, rows.Err()
}
