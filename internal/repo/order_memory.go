package repo

import (
	"sync"

	"github.com/terminalhome/ims-backend/internal/models"
)

type InMemoryOrderRepository struct {
	mu    sync.Mutex
	items []models.OrderItem
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{}
}

func (r *InMemoryOrderRepository) SetItems(items []models.OrderItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
}

func (r *InMemoryOrderRepository) RecentItems(orderLimit int) ([]models.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[int]bool{}
	var out []models.OrderItem
	// items are kept newest first in tests; bound by distinct orders
	for _, it := range r.items {
		if !seen[it.OrderID] {
			if len(seen) >= orderLimit {
				continue
			}
			seen[it.OrderID] = true
		}
		out = append(out, it)
	}
	return out, nil
}
