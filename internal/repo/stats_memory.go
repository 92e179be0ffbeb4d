package repo

type InMemoryStatsRepository struct {
	inventory *InMemoryInventoryRepository
	movements *InMemoryMovementRepository
	alerts    *InMemoryAlertRepository
}

func NewInMemoryStatsRepository() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{}
}

func (r *InMemoryStatsRepository) SetRepositories(inventory *InMemoryInventoryRepository, movements *InMemoryMovementRepository, alerts *InMemoryAlertRepository) {
	r.inventory = inventory
	r.movements = movements
	r.alerts = alerts
}

func (r *InMemoryStatsRepository) GetStats() (Stats, error) {
	var s Stats

	lines, _ := r.inventory.GetAll()
	s.TotalItems = len(lines)
	for _, l := range lines {
		s.TotalValue += float64(l.Quantity) * l.UnitCost
		if l.Quantity == 0 {
			s.OutOfStockCount++
		} else if l.Quantity <= l.ReorderPoint {
			s.LowStockCount++
		}
	}

	if r.movements != nil {
		r.movements.mu.Lock()
		s.TotalMovements = len(r.movements.movements)
		r.movements.mu.Unlock()
	}
	if r.alerts != nil {
		r.alerts.mu.Lock()
		for _, a := range r.alerts.alerts {
			if a.ResolvedAt == nil {
				s.OpenAlertCount++
			}
		}
		r.alerts.mu.Unlock()
	}
	return s, nil
}
