package repo

import (
	"sync"

	"github.com/terminalhome/ims-backend/internal/models"
)

type InMemoryRuleRepository struct {
	mu    sync.Mutex
	rules []models.ReorderRule
}

func NewInMemoryRuleRepository() *InMemoryRuleRepository {
	return &InMemoryRuleRepository{}
}

func (r *InMemoryRuleRepository) SetRules(rules []models.ReorderRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = rules
}

func (r *InMemoryRuleRepository) GetActive() ([]models.ReorderRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active []models.ReorderRule
	for _, rule := range r.rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	return active, nil
}
