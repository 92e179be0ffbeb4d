package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

type stubForecaster struct {
	result *AIResult
	err    error
	calls  int
}

func (s *stubForecaster) Forecast(ctx context.Context, snapshot []ProductSnapshot, month string, year int) (*AIResult, error) {
	s.calls++
	return s.result, s.err
}

func newTestOrchestrator(t *testing.T, ai Forecaster) (*Orchestrator, *repo.InMemoryInventoryRepository, *repo.InMemoryOrderRepository, *repo.InMemoryForecastRepository) {
	t.Helper()
	inventory := repo.NewInMemoryInventoryRepository()
	orders := repo.NewInMemoryOrderRepository()
	forecasts := repo.NewInMemoryForecastRepository()
	return NewOrchestrator(inventory, orders, forecasts, ai, time.Second), inventory, orders, forecasts
}

func seedLine(t *testing.T, inventory *repo.InMemoryInventoryRepository) models.InventoryLine {
	t.Helper()
	line, err := inventory.Create(models.InventoryLine{
		ProductID:    1,
		ProductName:  "Rattan Bench",
		Category:     "seating",
		SKU:          "TRM-BNC-0001",
		Quantity:     9,
		ReorderPoint: 4,
	})
	if err != nil {
		t.Fatalf("seeding line: %v", err)
	}
	return line
}

func TestRunServesFreshForecastAsCached(t *testing.T) {
	ai := &stubForecaster{}
	o, inventory, _, forecasts := newTestOrchestrator(t, ai)
	seedLine(t, inventory)

	if _, err := forecasts.Create(models.DemandForecast{
		ProductName:  "Rattan Bench",
		SKU:          "TRM-BNC-0001",
		PredictedQty: 14,
		Confidence:   0.8,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seeding forecast: %v", err)
	}

	result, err := o.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Cached {
		t.Error("expected cached result")
	}
	if result.Summary != "" || result.Recommendations != nil {
		t.Errorf("cached result must carry no summary, got %+v", result)
	}
	if len(result.Forecasts) != 1 || result.Forecasts[0].PredictedQty != 14 {
		t.Errorf("forecasts = %+v", result.Forecasts)
	}
	if ai.calls != 0 {
		t.Errorf("collaborator called %d times for a fresh forecast", ai.calls)
	}
}

func TestRunForceRefreshBypassesCache(t *testing.T) {
	ai := &stubForecaster{result: &AIResult{
		Forecasts: []Entry{{ProductName: "Rattan Bench", SKU: "TRM-BNC-0001", PredictedQty: 22, Confidence: 0.9}},
		Summary:   "Steady demand expected.",
	}}
	o, inventory, _, forecasts := newTestOrchestrator(t, ai)
	seedLine(t, inventory)

	if _, err := forecasts.Create(models.DemandForecast{SKU: "TRM-BNC-0001", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("seeding forecast: %v", err)
	}

	result, err := o.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached {
		t.Error("force refresh must not serve the cache")
	}
	if ai.calls != 1 {
		t.Errorf("collaborator called %d times, want 1", ai.calls)
	}
	if result.Summary != "Steady demand expected." {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestRunStaleForecastRegenerates(t *testing.T) {
	ai := &stubForecaster{result: &AIResult{
		Forecasts: []Entry{{ProductName: "Rattan Bench", SKU: "TRM-BNC-0001", PredictedQty: 5, Confidence: 0.7}},
	}}
	o, inventory, _, forecasts := newTestOrchestrator(t, ai)
	seedLine(t, inventory)

	if _, err := forecasts.Create(models.DemandForecast{
		SKU:       "TRM-BNC-0001",
		CreatedAt: time.Now().UTC().Add(-25 * time.Hour),
	}); err != nil {
		t.Fatalf("seeding forecast: %v", err)
	}

	result, err := o.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached {
		t.Error("stale forecast must not be served as cached")
	}
	if ai.calls != 1 {
		t.Errorf("collaborator called %d times, want 1", ai.calls)
	}
}

func TestRunPersistsCollaboratorForecasts(t *testing.T) {
	ai := &stubForecaster{result: &AIResult{
		Forecasts: []Entry{{ProductName: "Rattan Bench", SKU: "TRM-BNC-0001", PredictedQty: 17, Confidence: 0.85, Trend: "increasing"}},
	}}
	o, inventory, _, forecasts := newTestOrchestrator(t, ai)
	seedLine(t, inventory)

	if _, err := o.Run(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := forecasts.CreatedSince(time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("reading stored forecasts: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("got %d stored forecasts, want 1", len(stored))
	}
	f := stored[0]
	if f.PredictedQty != 17 || f.Trend != "increasing" {
		t.Errorf("stored forecast = %+v", f)
	}
	wantDate := time.Now().UTC().AddDate(0, 0, forecastHorizonDays)
	if f.ForecastDate.Before(wantDate.Add(-time.Minute)) || f.ForecastDate.After(wantDate.Add(time.Minute)) {
		t.Errorf("forecast date = %v, want about %v", f.ForecastDate, wantDate)
	}
}

func TestRunFallsBackOnCollaboratorFailure(t *testing.T) {
	ai := &stubForecaster{err: errors.New("model overloaded")}
	o, inventory, orders, _ := newTestOrchestrator(t, ai)
	line := seedLine(t, inventory)

	orders.SetItems([]models.OrderItem{
		{OrderID: 1, ProductID: line.ProductID, Quantity: 3},
		{OrderID: 2, ProductID: line.ProductID, Quantity: 5},
	})

	result, err := o.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("collaborator failure must not reach the caller: %v", err)
	}
	if result.Cached {
		t.Error("fallback result must not be cached")
	}
	if len(result.Forecasts) != 1 {
		t.Fatalf("got %d forecasts, want 1", len(result.Forecasts))
	}

	f := result.Forecasts[0]
	// avg order qty is 4, reorder point 4: predicted = max(4*4, 4) = 16.
	if f.PredictedQty != 16 {
		t.Errorf("predicted qty = %d, want 16", f.PredictedQty)
	}
	if f.Confidence != 0.6 || f.Seasonality != "medium" || f.Trend != "stable" {
		t.Errorf("fallback entry = %+v", f)
	}
	if result.Summary != "Statistical forecast based on sales averages (AI analysis unavailable)" {
		t.Errorf("summary = %q", result.Summary)
	}
	if len(result.Recommendations) != 2 {
		t.Errorf("recommendations = %v", result.Recommendations)
	}
}

func TestRunFallsBackWithoutCollaborator(t *testing.T) {
	o, inventory, _, _ := newTestOrchestrator(t, nil)
	seedLine(t, inventory)

	result, err := o.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Forecasts) != 1 {
		t.Fatalf("got %d forecasts, want 1", len(result.Forecasts))
	}
	// No sales history: prediction falls back to the reorder point.
	if result.Forecasts[0].PredictedQty != 4 {
		t.Errorf("predicted qty = %d, want 4", result.Forecasts[0].PredictedQty)
	}
}

func TestFallbackFormula(t *testing.T) {
	snapshot := []ProductSnapshot{
		{Name: "Rattan Bench", SKU: "TRM-BNC-0001", AvgOrderQty: 6, ReorderPoint: 10},
		{Name: "Floor Lamp", SKU: "TRM-LMP-0001", AvgOrderQty: 1, ReorderPoint: 8},
	}
	out := Fallback(snapshot)

	if out.Forecasts[0].PredictedQty != 24 { // 6*4 > 10
		t.Errorf("predicted = %d, want 24", out.Forecasts[0].PredictedQty)
	}
	if out.Forecasts[1].PredictedQty != 8 { // 1*4 < 8
		t.Errorf("predicted = %d, want 8", out.Forecasts[1].PredictedQty)
	}
}
