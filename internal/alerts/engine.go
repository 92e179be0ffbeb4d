// Package alerts detects reorder-point breaches and manages the resulting
// stock alerts.
package alerts

import (
	"fmt"

	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

// Notifier receives alerts that were actually created (not deduplicated).
type Notifier interface {
	AlertCreated(a models.StockAlert)
}

type Engine struct {
	alerts   repo.AlertRepository
	notifier Notifier
}

func NewEngine(alerts repo.AlertRepository) *Engine {
	return &Engine{alerts: alerts}
}

// SetNotifier attaches an optional sink for newly created alerts.
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

// EvaluateAndAlert checks the line against its reorder point and creates a
// deduplicated alert when breached. It returns nil when no alert fires or an
// open alert of the same kind already exists; in the latter case nothing is
// created and the existing alert is left untouched. A low_stock breach that
// later drops to zero produces a second, distinct out_of_stock alert because
// dedup keys on (line, kind).
func (e *Engine) EvaluateAndAlert(line models.InventoryLine) (*models.StockAlert, error) {
	if line.Quantity > line.ReorderPoint {
		return nil, nil
	}

	kind := models.AlertLowStock
	severity := models.SeverityWarning
	state := "low"
	if line.Quantity == 0 {
		kind = models.AlertOutOfStock
		severity = models.SeverityCritical
		state = "depleted"
	}

	alert := models.StockAlert{
		InventoryLineID: line.ID,
		Kind:            kind,
		Severity:        severity,
		Message:         fmt.Sprintf("Stock for %s is %s (%d/%d)", line.SKU, state, line.Quantity, line.ReorderPoint),
		SKU:             line.SKU,
		ProductName:     line.ProductName,
	}

	created, inserted, err := e.alerts.CreateIfAbsent(alert)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	if !inserted {
		return nil, nil
	}
	if e.notifier != nil {
		e.notifier.AlertCreated(created)
	}
	return &created, nil
}

// List returns the newest alerts, optionally unread only.
func (e *Engine) List(unreadOnly bool) ([]models.StockAlert, error) {
	return e.alerts.List(unreadOnly)
}

// MarkRead marks the given alerts as read, or every unread alert when all is
// set. It never touches resolved_at.
func (e *Engine) MarkRead(ids []int, all bool) error {
	if all {
		return e.alerts.MarkAllRead()
	}
	return e.alerts.MarkRead(ids)
}
