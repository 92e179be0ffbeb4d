package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type PostgresRuleRepository struct {
	db *sql.DB
}

func NewPostgresRuleRepository(db *sql.DB) *PostgresRuleRepository {
	return &PostgresRuleRepository{db: db}
}

func (r *PostgresRuleRepository) GetActive() ([]models.ReorderRule, error) {
	query := `SELECT id, name, category, min_stock_level, reorder_quantity, max_stock_level, auto_reorder, is_active
		FROM reorder_rules WHERE is_active = true ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.ReorderRule
	for rows.Next() {
		var rule models.ReorderRule
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Category, &rule.MinStockLevel,
			&rule.ReorderQuantity, &rule.MaxStockLevel, &rule.AutoReorder, &rule.IsActive); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
