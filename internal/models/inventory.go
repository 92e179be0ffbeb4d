package models

import "time"

// InventoryLine is the stock record for one product/SKU. Quantity is a
// cached value derived from the movement history; it is mutated only inside
// the same transaction that appends the movement row.
type InventoryLine struct {
	ID              int        `json:"id"`
	ProductID       int        `json:"product_id"`
	ProductName     string     `json:"product_name,omitempty"`
	Category        string     `json:"category,omitempty"`
	SKU             string     `json:"sku"`
	Quantity        int        `json:"quantity"`
	ReservedQty     int        `json:"reserved_qty"`
	ReorderPoint    int        `json:"reorder_point"`
	ReorderQty      int        `json:"reorder_qty"`
	UnitCost        float64    `json:"unit_cost"`
	Location        string     `json:"location,omitempty"`
	LastRestockedAt *time.Time `json:"last_restocked_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
