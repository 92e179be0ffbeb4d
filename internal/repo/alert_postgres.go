package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type PostgresAlertRepository struct {
	db *sql.DB
}

func NewPostgresAlertRepository(db *sql.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

const alertListLimit = 50

// CreateIfAbsent inserts the alert unless an open alert with the same
// (inventory_line_id, kind) exists. The partial unique index on open alerts
// makes this race-free under concurrent evaluation: the conditional insert
// either lands or hits the index and does nothing.
func (r *PostgresAlertRepository) CreateIfAbsent(a models.StockAlert) (models.StockAlert, bool, error) {
	query := `INSERT INTO stock_alerts (inventory_line_id, kind, message, severity, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, $5)
		ON CONFLICT (inventory_line_id, kind) WHERE resolved_at IS NULL DO NOTHING
		RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, a.InventoryLineID, a.Kind, a.Message, a.Severity, now).
		Scan(&a.ID, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// An open alert of this kind already exists; nothing created.
		return models.StockAlert{}, false, nil
	}
	if err != nil {
		return models.StockAlert{}, false, fmt.Errorf("failed to insert alert: %w", err)
	}
	return a, true, nil
}

func (r *PostgresAlertRepository) List(unreadOnly bool) ([]models.StockAlert, error) {
	query := `SELECT a.id, a.inventory_line_id, a.kind, a.message, a.severity, a.is_read, a.resolved_at, a.created_at, i.sku, p.name
		FROM stock_alerts a
		JOIN inventory_lines i ON i.id = a.inventory_line_id
		JOIN products p ON p.id = i.product_id`
	if unreadOnly {
		query += " WHERE a.is_read = false"
	}
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT %d", alertListLimit)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.StockAlert
	for rows.Next() {
		var a models.StockAlert
		if err := rows.Scan(&a.ID, &a.InventoryLineID, &a.Kind, &a.Message, &a.Severity,
			&a.IsRead, &a.ResolvedAt, &a.CreatedAt, &a.SKU, &a.ProductName); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *PostgresAlertRepository) MarkRead(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	query := "UPDATE stock_alerts SET is_read = true WHERE id = ANY($1)"
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	idsArg := make([]int32, len(ids))
	for i, id := range ids {
		idsArg[i] = int32(id)
	}
	_, err := r.db.ExecContext(ctx, query, idsArg)
	return err
}

func (r *PostgresAlertRepository) MarkAllRead() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, "UPDATE stock_alerts SET is_read = true WHERE is_read = false")
	return err
}
