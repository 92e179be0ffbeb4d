package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type PostgresMovementRepository struct {
	db *sql.DB
}

func NewPostgresMovementRepository(db *sql.DB) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

const defaultMovementLimit = 50
const maxMovementLimit = 200

// Record appends the movement row and applies its quantity change in one
// transaction. The quantity write is a single conditional UPDATE so that
// concurrent writers against the same line serialize on the row instead of
// racing on a stale read. The movement row keeps the requested amount even
// when an "out" is floored at zero stock.
func (r *PostgresMovementRepository) Record(m models.StockMovement) (models.StockMovement, models.InventoryLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.StockMovement{}, models.InventoryLine{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var update string
	switch m.Kind {
	case models.MovementIn:
		update = `UPDATE inventory_lines SET quantity = quantity + $1, last_restocked_at = $2, updated_at = $2 WHERE id = $3`
	case models.MovementReturn:
		update = `UPDATE inventory_lines SET quantity = quantity + $1, updated_at = $2 WHERE id = $3`
	case models.MovementOut:
		update = `UPDATE inventory_lines SET quantity = GREATEST(0, quantity - $1), updated_at = $2 WHERE id = $3`
	case models.MovementAdjustment:
		update = `UPDATE inventory_lines SET quantity = $1, updated_at = $2 WHERE id = $3`
	default:
		return models.StockMovement{}, models.InventoryLine{}, fmt.Errorf("unknown movement kind %q", m.Kind)
	}

	var l models.InventoryLine
	err = tx.QueryRowContext(ctx, update+`
		RETURNING id, product_id, sku, quantity, reserved_qty, reorder_point, reorder_qty, unit_cost, location, last_restocked_at, created_at, updated_at`,
		m.Amount, now, m.InventoryLineID).
		Scan(&l.ID, &l.ProductID, &l.SKU, &l.Quantity, &l.ReservedQty, &l.ReorderPoint, &l.ReorderQty,
			&l.UnitCost, &l.Location, &l.LastRestockedAt, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StockMovement{}, models.InventoryLine{}, ErrInventoryNotFound
	}
	if err != nil {
		return models.StockMovement{}, models.InventoryLine{}, fmt.Errorf("failed to update quantity: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO stock_movements (inventory_line_id, kind, amount, reason, reference, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		m.InventoryLineID, m.Kind, m.Amount, m.Reason, m.Reference, now).Scan(&m.ID)
	if err != nil {
		return models.StockMovement{}, models.InventoryLine{}, fmt.Errorf("failed to insert movement: %w", err)
	}
	m.CreatedAt = now

	if err := tx.Commit(); err != nil {
		return models.StockMovement{}, models.InventoryLine{}, fmt.Errorf("failed to commit movement: %w", err)
	}
	return m, l, nil
}

// Filter returns movements newest first, with the total count for the same
// conditions.
func (r *PostgresMovementRepository) Filter(f MovementFilter) ([]models.StockMovement, int, error) {
	whereClause, args := buildMovementWhere(f)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	query := "SELECT id, inventory_line_id, kind, amount, reason, reference, created_at FROM stock_movements " +
		whereClause + " ORDER BY created_at DESC"
	argIdx := len(args) + 1

	limit := defaultMovementLimit
	if f.Limit != nil && *f.Limit > 0 {
		limit = min(*f.Limit, maxMovementLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++

	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var movements []models.StockMovement
	for rows.Next() {
		var m models.StockMovement
		if err := rows.Scan(&m.ID, &m.InventoryLineID, &m.Kind, &m.Amount, &m.Reason, &m.Reference, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		movements = append(movements, m)
	}
	return movements, total, rows.Err()
}

func buildMovementWhere(f MovementFilter) (string, []any) {
	whereClause := "WHERE 1=1"
	args := []any{}
	argIdx := 1

	if f.InventoryLineID != nil {
		whereClause += fmt.Sprintf(" AND inventory_line_id = $%d", argIdx)
		args = append(args, *f.InventoryLineID)
		argIdx++
	}
	if f.Kind != nil {
		whereClause += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, *f.Kind)
		argIdx++
	}
	if f.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *f.Since)
		argIdx++
	}
	if f.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *f.Until)
	}
	return whereClause, args
}

func (r *PostgresMovementRepository) getTotal(whereClause string, args []any) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stock_movements "+whereClause, args...).Scan(&total)
	return total, err
}
