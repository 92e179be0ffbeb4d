package repo

import (
	"sync"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

// InMemoryMovementRepository appends movements and applies their quantity
// change to the paired in-memory inventory repository.
type InMemoryMovementRepository struct {
	mu        sync.Mutex
	movements []models.StockMovement
	inventory *InMemoryInventoryRepository
}

func NewInMemoryMovementRepository(inventory *InMemoryInventoryRepository) *InMemoryMovementRepository {
	return &InMemoryMovementRepository{inventory: inventory}
}

func (r *InMemoryMovementRepository) Record(m models.StockMovement) (models.StockMovement, models.InventoryLine, error) {
	now := time.Now().UTC()
	line, err := r.inventory.applyMovement(m.InventoryLineID, m.Kind, m.Amount, now)
	if err != nil {
		return models.StockMovement{}, models.InventoryLine{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = len(r.movements) + 1
	m.CreatedAt = now
	r.movements = append(r.movements, m)
	return m, line, nil
}

func matchesMovementFilter(m models.StockMovement, f MovementFilter) bool {
	if f.InventoryLineID != nil && m.InventoryLineID != *f.InventoryLineID {
		return false
	}
	if f.Kind != nil && m.Kind != *f.Kind {
		return false
	}
	if f.Since != nil && m.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && m.CreatedAt.After(*f.Until) {
		return false
	}
	return true
}

func (r *InMemoryMovementRepository) Filter(f MovementFilter) ([]models.StockMovement, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.StockMovement
	// newest first
	for i := len(r.movements) - 1; i >= 0; i-- {
		if matchesMovementFilter(r.movements[i], f) {
			filtered = append(filtered, r.movements[i])
		}
	}
	total := len(filtered)

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, total)
	}
	limit := defaultMovementLimit
	if f.Limit != nil && *f.Limit > 0 {
		limit = min(*f.Limit, maxMovementLimit)
	}
	end := clamp(start+limit, start, total)

	return filtered[start:end], total, nil
}

func (r *InMemoryMovementRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
