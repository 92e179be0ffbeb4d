package forecast

// Fallback builds the deterministic statistical forecast used whenever the
// collaborator is unavailable. It is a pure function with no failure path.
func Fallback(snapshot []ProductSnapshot) AIResult {
	forecasts := make([]Entry, len(snapshot))
	for i, s := range snapshot {
		forecasts[i] = Entry{
			ProductName:  s.Name,
			SKU:          s.SKU,
			PredictedQty: max(s.AvgOrderQty*4, s.ReorderPoint),
			Confidence:   0.6,
			Seasonality:  "medium",
			Trend:        "stable",
			Factors:      "Based on historical average sales",
		}
	}
	return AIResult{
		Forecasts: forecasts,
		Summary:   "Statistical forecast based on sales averages (AI analysis unavailable)",
		Recommendations: []string{
			"Monitor stock levels closely",
			"Consider seasonal trends",
		},
	}
}
