// Package forecast produces 30-day demand forecasts, preferring an external
// AI collaborator and degrading to a deterministic statistical forecast.
package forecast

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

// FreshnessWindow is how long a prior forecast run stays valid and is served
// from the store instead of being regenerated.
const FreshnessWindow = 24 * time.Hour

const forecastHorizonDays = 30
const recentOrderWindow = 200

// ProductSnapshot is the per-product sales/inventory summary sent to the
// forecasting collaborator.
type ProductSnapshot struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Category     string `json:"category"`
	TotalSold    int    `json:"totalSold"`
	OrderCount   int    `json:"orderCount"`
	AvgOrderQty  int    `json:"avgOrderQty"`
	CurrentStock int    `json:"currentStock"`
	ReorderPoint int    `json:"reorderPoint"`
}

// Entry is a single product forecast, either AI-produced or statistical.
type Entry struct {
	ProductName  string  `json:"productName"`
	SKU          string  `json:"sku"`
	PredictedQty int     `json:"predictedQty"`
	Confidence   float64 `json:"confidence"`
	Seasonality  string  `json:"seasonality"`
	Trend        string  `json:"trend"`
	Factors      string  `json:"factors"`
}

// AIResult is the typed shape the collaborator response must decode into.
type AIResult struct {
	Forecasts       []Entry  `json:"forecasts"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

type Result struct {
	Forecasts       []Entry  `json:"forecasts"`
	Summary         string   `json:"summary,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Cached          bool     `json:"cached"`
}

// Forecaster is the external prediction collaborator.
type Forecaster interface {
	Forecast(ctx context.Context, snapshot []ProductSnapshot, month string, year int) (*AIResult, error)
}

type Orchestrator struct {
	inventory repo.InventoryRepository
	orders    repo.OrderRepository
	forecasts repo.ForecastRepository
	ai        Forecaster
	timeout   time.Duration
	now       func() time.Time
}

func NewOrchestrator(inventory repo.InventoryRepository, orders repo.OrderRepository, forecasts repo.ForecastRepository, ai Forecaster, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		inventory: inventory,
		orders:    orders,
		forecasts: forecasts,
		ai:        ai,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Run serves the stored forecast when one is fresh (unless forceRefresh),
// otherwise assembles a sales snapshot, asks the collaborator, and persists
// the outcome. A collaborator failure of any sort - timeout, transport
// error, unparseable response - is absorbed by the statistical fallback and
// never reaches the caller.
func (o *Orchestrator) Run(ctx context.Context, forceRefresh bool) (Result, error) {
	now := o.now().UTC()

	if !forceRefresh {
		recent, err := o.forecasts.CreatedSince(now.Add(-FreshnessWindow))
		if err != nil {
			return Result{}, err
		}
		if len(recent) > 0 {
			return Result{Forecasts: rowsToEntries(recent), Cached: true}, nil
		}
	}

	snapshot, err := o.buildSnapshot()
	if err != nil {
		return Result{}, err
	}

	aiData := o.askCollaborator(ctx, snapshot, now)
	if aiData == nil {
		fallback := Fallback(snapshot)
		aiData = &fallback
	}

	forecastDate := now.AddDate(0, 0, forecastHorizonDays)
	for _, f := range aiData.Forecasts {
		_, err := o.forecasts.Create(models.DemandForecast{
			ProductName:  f.ProductName,
			SKU:          f.SKU,
			ForecastDate: forecastDate,
			PredictedQty: f.PredictedQty,
			Confidence:   f.Confidence,
			Seasonality:  f.Seasonality,
			Trend:        f.Trend,
			Factors:      f.Factors,
			CreatedAt:    now,
		})
		if err != nil {
			log.Printf("⚠️ could not persist forecast for %s: %v", f.SKU, err)
		}
	}

	return Result{
		Forecasts:       aiData.Forecasts,
		Summary:         aiData.Summary,
		Recommendations: aiData.Recommendations,
		Cached:          false,
	}, nil
}

func (o *Orchestrator) askCollaborator(ctx context.Context, snapshot []ProductSnapshot, now time.Time) *AIResult {
	if o.ai == nil {
		return nil
	}
	callCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	aiData, err := o.ai.Forecast(callCtx, snapshot, now.Month().String(), now.Year())
	if err != nil {
		log.Printf("⚠️ forecast collaborator failed, using statistical fallback: %v", err)
		return nil
	}
	if aiData == nil || len(aiData.Forecasts) == 0 {
		log.Printf("⚠️ forecast collaborator returned no forecasts, using statistical fallback")
		return nil
	}
	return aiData
}

// buildSnapshot joins every inventory line with the recent order window to
// compute per-product sales totals.
func (o *Orchestrator) buildSnapshot() ([]ProductSnapshot, error) {
	lines, err := o.inventory.GetAll()
	if err != nil {
		return nil, err
	}
	items, err := o.orders.RecentItems(recentOrderWindow)
	if err != nil {
		return nil, err
	}

	sold := map[int]int{}
	counts := map[int]int{}
	for _, it := range items {
		sold[it.ProductID] += it.Quantity
		counts[it.ProductID]++
	}

	snapshot := make([]ProductSnapshot, 0, len(lines))
	for _, l := range lines {
		s := ProductSnapshot{
			Name:         l.ProductName,
			SKU:          l.SKU,
			Category:     l.Category,
			TotalSold:    sold[l.ProductID],
			OrderCount:   counts[l.ProductID],
			CurrentStock: l.Quantity,
			ReorderPoint: l.ReorderPoint,
		}
		if s.OrderCount > 0 {
			s.AvgOrderQty = int(math.Round(float64(s.TotalSold) / float64(s.OrderCount)))
		}
		snapshot = append(snapshot, s)
	}
	return snapshot, nil
}

func rowsToEntries(rows []models.DemandForecast) []Entry {
	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{
			ProductName:  r.ProductName,
			SKU:          r.SKU,
			PredictedQty: r.PredictedQty,
			Confidence:   r.Confidence,
			Seasonality:  r.Seasonality,
			Trend:        r.Trend,
			Factors:      r.Factors,
		}
	}
	return entries
}
