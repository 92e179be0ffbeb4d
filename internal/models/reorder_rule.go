package models

// ReorderRule drives purchasing suggestions. A nil Category marks the
// catch-all rule; nil MinStockLevel or ReorderQuantity fall back to the
// per-line reorder point and quantity.
type ReorderRule struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Category        *string `json:"category,omitempty"`
	MinStockLevel   *int    `json:"min_stock_level,omitempty"`
	ReorderQuantity *int    `json:"reorder_quantity,omitempty"`
	MaxStockLevel   *int    `json:"max_stock_level,omitempty"`
	AutoReorder     bool    `json:"auto_reorder"`
	IsActive        bool    `json:"is_active"`
}
