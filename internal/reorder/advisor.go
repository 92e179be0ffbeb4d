// Package reorder matches inventory lines against reorder rules and produces
// purchasing suggestions.
package reorder

import (
	"fmt"
	"log"

	"github.com/terminalhome/ims-backend/internal/alerts"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

type Advisor struct {
	inventory repo.InventoryRepository
	rules     repo.RuleRepository
	alerts    *alerts.Engine
}

func NewAdvisor(inventory repo.InventoryRepository, rules repo.RuleRepository, alertEngine *alerts.Engine) *Advisor {
	return &Advisor{inventory: inventory, rules: rules, alerts: alertEngine}
}

type Suggestion struct {
	Product       string  `json:"product"`
	SKU           string  `json:"sku"`
	CurrentStock  int     `json:"current_stock"`
	ReorderPoint  int     `json:"reorder_point"`
	SuggestedQty  int     `json:"suggested_qty"`
	EstimatedCost float64 `json:"estimated_cost"`
	Urgency       string  `json:"urgency"`
}

type Result struct {
	Suggestions        []Suggestion `json:"suggestions"`
	TotalItems         int          `json:"total_items"`
	TotalEstimatedCost float64      `json:"total_estimated_cost"`
}

// ComputeSuggestions sweeps every inventory line against the active reorder
// rules. A line prefers the first active rule for its category and falls back
// to the first catch-all rule (nil category); with neither it is skipped.
// Each qualifying line also runs through the alert engine's dedup-create, so
// a sweep is a read path with that one side effect.
func (a *Advisor) ComputeSuggestions() (Result, error) {
	lines, err := a.inventory.GetAll()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	rules, err := a.rules.GetActive()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load reorder rules: %w", err)
	}

	result := Result{Suggestions: []Suggestion{}}
	for _, line := range lines {
		rule, ok := matchRule(rules, line.Category)
		if !ok {
			continue
		}

		threshold := line.ReorderPoint
		if rule.MinStockLevel != nil {
			threshold = *rule.MinStockLevel
		}
		if line.Quantity > threshold {
			continue
		}

		suggestedQty := line.ReorderQty
		if rule.ReorderQuantity != nil {
			suggestedQty = *rule.ReorderQuantity
		}

		urgency := string(models.SeverityWarning)
		if line.Quantity == 0 {
			urgency = string(models.SeverityCritical)
		}

		s := Suggestion{
			Product:       line.ProductName,
			SKU:           line.SKU,
			CurrentStock:  line.Quantity,
			ReorderPoint:  threshold,
			SuggestedQty:  suggestedQty,
			EstimatedCost: float64(suggestedQty) * line.UnitCost,
			Urgency:       urgency,
		}
		result.Suggestions = append(result.Suggestions, s)
		result.TotalEstimatedCost += s.EstimatedCost

		if _, err := a.alerts.EvaluateAndAlert(line); err != nil {
			log.Printf("⚠️ alert evaluation failed during reorder sweep for line %d: %v", line.ID, err)
		}
	}
	result.TotalItems = len(result.Suggestions)
	return result, nil
}

// matchRule picks the first active rule whose category equals the line's,
// else the first catch-all rule.
func matchRule(rules []models.ReorderRule, category string) (models.ReorderRule, bool) {
	for _, r := range rules {
		if r.Category != nil && *r.Category == category {
			return r, true
		}
	}
	for _, r := range rules {
		if r.Category == nil {
			return r, true
		}
	}
	return models.ReorderRule{}, false
}
