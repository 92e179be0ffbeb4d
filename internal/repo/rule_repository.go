package repo

import "github.com/terminalhome/ims-backend/internal/models"

// RuleRepository lists reorder rules. GetActive returns active rules in id
// order; rule matching relies on that order being stable.
type RuleRepository interface {
	GetActive() ([]models.ReorderRule, error)
}
