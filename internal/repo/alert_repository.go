package repo

import "github.com/terminalhome/ims-backend/internal/models"

// AlertRepository stores stock alerts. CreateIfAbsent is the dedup primitive:
// it inserts the alert unless an open alert with the same
// (inventory_line_id, kind) already exists, and reports whether a row was
// created. Existing alerts are never mutated by it.
type AlertRepository interface {
	CreateIfAbsent(a models.StockAlert) (models.StockAlert, bool, error)
	List(unreadOnly bool) ([]models.StockAlert, error)
	MarkRead(ids []int) error
	MarkAllRead() error
}
