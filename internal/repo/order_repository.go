package repo

import "github.com/terminalhome/ims-backend/internal/models"

// OrderRepository exposes the read-only slice of order history the forecast
// snapshot consumes: the items of the most recent orders, newest first.
type OrderRepository interface {
	RecentItems(orderLimit int) ([]models.OrderItem, error)
}
