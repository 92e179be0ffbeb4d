package forecast

import (
	"strings"
	"testing"
)

func TestDecodeResultExtractsEmbeddedJSON(t *testing.T) {
	reply := "Here is my analysis:\n```json\n" + `{
		"forecasts": [
			{"productName": "Rattan Bench", "sku": "TRM-BNC-0001", "predictedQty": 12, "confidence": 0.9, "seasonality": "low", "trend": "up", "factors": "steady sales"},
			{"productName": "", "sku": "TRM-XXX", "predictedQty": 5, "confidence": 0.5},
			{"productName": "Floor Lamp", "sku": "TRM-LMP-0001", "predictedQty": 7, "confidence": 1.4}
		],
		"summary": "stable month",
		"recommendations": ["restock benches"]
	}` + "\n```\nLet me know if you need more detail."

	result, err := decodeResult(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Forecasts) != 2 {
		t.Fatalf("got %d forecasts, want 2 (nameless entry dropped)", len(result.Forecasts))
	}
	if result.Forecasts[0].PredictedQty != 12 {
		t.Errorf("predicted = %d", result.Forecasts[0].PredictedQty)
	}
	if result.Forecasts[1].Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", result.Forecasts[1].Confidence)
	}
	if result.Summary != "stable month" {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestDecodeResultErrors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no JSON", "I cannot help with that."},
		{"broken JSON", `{"forecasts": [`},
		{"no usable entries", `{"forecasts": [{"predictedQty": 3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeResult(tt.reply); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBuildPromptIncludesSnapshotAndFormat(t *testing.T) {
	prompt, err := buildPrompt([]ProductSnapshot{
		{Name: "Rattan Bench", SKU: "TRM-BNC-0001", TotalSold: 9, CurrentStock: 4},
	}, "August", 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"TRM-BNC-0001", "August 2026", `"predictedQty"`, "next 30 days"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
