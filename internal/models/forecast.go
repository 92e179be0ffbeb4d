package models

import "time"

// DemandForecast is a write-once row produced by a forecast run. Rows are
// considered fresh for 24 hours after creation and superseded by the next
// run, never updated.
type DemandForecast struct {
	ID           int       `json:"id"`
	ProductName  string    `json:"product_name"`
	SKU          string    `json:"sku"`
	ForecastDate time.Time `json:"forecast_date"`
	PredictedQty int       `json:"predicted_qty"`
	Confidence   float64   `json:"confidence"`
	Seasonality  string    `json:"seasonality"`
	Trend        string    `json:"trend"`
	Factors      string    `json:"factors"`
	CreatedAt    time.Time `json:"created_at"`
}
