package repo

import (
	"slices"
	"sync"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type InMemoryAlertRepository struct {
	mu     sync.Mutex
	alerts []models.StockAlert
	nextID int
}

func NewInMemoryAlertRepository() *InMemoryAlertRepository {
	return &InMemoryAlertRepository{nextID: 1}
}

func (r *InMemoryAlertRepository) CreateIfAbsent(a models.StockAlert) (models.StockAlert, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.alerts {
		if existing.InventoryLineID == a.InventoryLineID && existing.Kind == a.Kind && existing.ResolvedAt == nil {
			return models.StockAlert{}, false, nil
		}
	}
	a.ID = r.nextID
	r.nextID++
	a.IsRead = false
	a.CreatedAt = time.Now().UTC()
	r.alerts = append(r.alerts, a)
	return a, true, nil
}

func (r *InMemoryAlertRepository) List(unreadOnly bool) ([]models.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.StockAlert
	for i := len(r.alerts) - 1; i >= 0 && len(out) < alertListLimit; i-- {
		if unreadOnly && r.alerts[i].IsRead {
			continue
		}
		out = append(out, r.alerts[i])
	}
	return out, nil
}

func (r *InMemoryAlertRepository) MarkRead(ids []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.alerts {
		if slices.Contains(ids, a.ID) {
			r.alerts[i].IsRead = true
		}
	}
	return nil
}

func (r *InMemoryAlertRepository) MarkAllRead() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		r.alerts[i].IsRead = true
	}
	return nil
}

// Resolve closes an open alert; provided for tests exercising the
// no-auto-resolution behavior from the collaborator side.
func (r *InMemoryAlertRepository) Resolve(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for i, a := range r.alerts {
		if a.ID == id && a.ResolvedAt == nil {
			r.alerts[i].ResolvedAt = &now
			return nil
		}
	}
	return nil
}

func (r *InMemoryAlertRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = nil
	r.nextID = 1
}
