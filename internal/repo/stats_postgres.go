package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) GetStats() (Stats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s Stats

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_lines`).Scan(&s.TotalItems)
	_ = r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(quantity * unit_cost), 0) FROM inventory_lines`).Scan(&s.TotalValue)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_lines WHERE quantity <= reorder_point AND quantity > 0`).Scan(&s.LowStockCount)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_lines WHERE quantity = 0`).Scan(&s.OutOfStockCount)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_movements`).Scan(&s.TotalMovements)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_alerts WHERE resolved_at IS NULL`).Scan(&s.OpenAlertCount)

	return s, nil
}
