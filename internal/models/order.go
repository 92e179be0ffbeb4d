package models

import "time"

// OrderItem is a read-only slice of the store's order history, consumed by
// the forecast snapshot.
type OrderItem struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
