package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

// InMemoryInventoryRepository is an in-memory implementation of
// InventoryRepository, used by tests and local runs without a database.
type InMemoryInventoryRepository struct {
	mu     sync.Mutex
	lines  []models.InventoryLine
	nextID int
}

func NewInMemoryInventoryRepository() *InMemoryInventoryRepository {
	return &InMemoryInventoryRepository{nextID: 1}
}

func (r *InMemoryInventoryRepository) Create(l models.InventoryLine) (models.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.lines {
		if existing.SKU == l.SKU {
			return models.InventoryLine{}, ErrDuplicatedValueUnique
		}
	}
	l.ID = r.nextID
	r.nextID++
	r.lines = append(r.lines, l)
	return l, nil
}

func (r *InMemoryInventoryRepository) GetAll() ([]models.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.InventoryLine, len(r.lines))
	copy(out, r.lines)
	return out, nil
}

func (r *InMemoryInventoryRepository) GetByID(id int) (models.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.ID == id {
			return l, nil
		}
	}
	return models.InventoryLine{}, ErrInventoryNotFound
}

func (r *InMemoryInventoryRepository) Update(l models.InventoryLine) (models.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.lines {
		if existing.ID == l.ID {
			// Quantity only changes through movements.
			l.Quantity = existing.Quantity
			l.LastRestockedAt = existing.LastRestockedAt
			l.CreatedAt = existing.CreatedAt
			l.UpdatedAt = time.Now().UTC()
			r.lines[i] = l
			return l, nil
		}
	}
	return models.InventoryLine{}, ErrInventoryNotFound
}

func matchesInventoryFilter(l models.InventoryLine, f InventoryFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.SKU), q) &&
			!strings.Contains(strings.ToLower(l.ProductName), q) &&
			!strings.Contains(strings.ToLower(l.Category), q) {
			return false
		}
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	switch f.StockStatus {
	case StockStatusLow:
		return l.Quantity <= l.ReorderPoint && l.Quantity > 0
	case StockStatusOut:
		return l.Quantity == 0
	case StockStatusOK:
		return l.Quantity > l.ReorderPoint
	}
	return true
}

func (r *InMemoryInventoryRepository) Filter(f InventoryFilter) ([]models.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.InventoryLine
	for _, l := range r.lines {
		if matchesInventoryFilter(l, f) {
			filtered = append(filtered, l)
		}
	}

	asc := strings.EqualFold(f.SortOrder, "asc")
	sort.SliceStable(filtered, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "quantity":
			less = filtered[i].Quantity < filtered[j].Quantity
		case "sku":
			less = filtered[i].SKU < filtered[j].SKU
		case "unit_cost":
			less = filtered[i].UnitCost < filtered[j].UnitCost
		case "created_at":
			less = filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		default:
			less = filtered[i].UpdatedAt.Before(filtered[j].UpdatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
	return filtered, nil
}

// applyMovement mutates the cached quantity under the repository lock. Only
// the movement repository calls it, mirroring the single-transaction rule of
// the Postgres implementation.
func (r *InMemoryInventoryRepository) applyMovement(id int, kind models.MovementKind, amount int, now time.Time) (models.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lines {
		if l.ID != id {
			continue
		}
		switch kind {
		case models.MovementIn:
			l.Quantity += amount
			l.LastRestockedAt = &now
		case models.MovementReturn:
			l.Quantity += amount
		case models.MovementOut:
			l.Quantity = max(0, l.Quantity-amount)
		case models.MovementAdjustment:
			l.Quantity = amount
		}
		l.UpdatedAt = now
		r.lines[i] = l
		return l, nil
	}
	return models.InventoryLine{}, ErrInventoryNotFound
}

func (r *InMemoryInventoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
	r.nextID = 1
}
