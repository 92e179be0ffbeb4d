package models

import "time"

type AlertKind string

const (
	AlertLowStock   AlertKind = "low_stock"
	AlertOutOfStock AlertKind = "out_of_stock"
)

type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// StockAlert flags a threshold breach on an inventory line. At most one open
// alert (resolved_at null) exists per (inventory_line_id, kind).
type StockAlert struct {
	ID              int           `json:"id"`
	InventoryLineID int           `json:"inventory_line_id"`
	Kind            AlertKind     `json:"kind"`
	Message         string        `json:"message"`
	Severity        AlertSeverity `json:"severity"`
	IsRead          bool          `json:"is_read"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	SKU             string        `json:"sku,omitempty"`
	ProductName     string        `json:"product_name,omitempty"`
}
