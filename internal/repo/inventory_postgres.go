package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type PostgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

const inventoryColumns = `i.id, i.product_id, p.name, p.category, i.sku, i.quantity, i.reserved_qty,
	i.reorder_point, i.reorder_qty, i.unit_cost, i.location, i.last_restocked_at, i.created_at, i.updated_at`

func scanInventoryLine(row interface{ Scan(...any) error }) (models.InventoryLine, error) {
	var l models.InventoryLine
	err := row.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.Category, &l.SKU, &l.Quantity, &l.ReservedQty,
		&l.ReorderPoint, &l.ReorderQty, &l.UnitCost, &l.Location, &l.LastRestockedAt, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *PostgresInventoryRepository) Create(l models.InventoryLine) (models.InventoryLine, error) {
	query := `INSERT INTO inventory_lines (product_id, sku, quantity, reserved_qty, reorder_point, reorder_qty, unit_cost, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now
	err := r.db.QueryRowContext(ctx, query, l.ProductID, l.SKU, l.Quantity, l.ReservedQty,
		l.ReorderPoint, l.ReorderQty, l.UnitCost, l.Location, l.CreatedAt, l.UpdatedAt).Scan(&l.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.InventoryLine{}, ErrDuplicatedValueUnique
	}
	return l, err
}

func (r *PostgresInventoryRepository) GetAll() ([]models.InventoryLine, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory_lines i JOIN products p ON p.id = i.product_id ORDER BY i.id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.InventoryLine
	for rows.Next() {
		l, err := scanInventoryLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PostgresInventoryRepository) GetByID(id int) (models.InventoryLine, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory_lines i JOIN products p ON p.id = i.product_id WHERE i.id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	l, err := scanInventoryLine(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.InventoryLine{}, ErrInventoryNotFound
	}
	return l, err
}

// Update writes the mutable line fields. Quantity is deliberately excluded;
// it only changes through the movement transaction.
func (r *PostgresInventoryRepository) Update(l models.InventoryLine) (models.InventoryLine, error) {
	query := `UPDATE inventory_lines
		SET sku = $1, reserved_qty = $2, reorder_point = $3, reorder_qty = $4, unit_cost = $5, location = $6, updated_at = $7
		WHERE id = $8`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, l.SKU, l.ReservedQty, l.ReorderPoint, l.ReorderQty,
		l.UnitCost, l.Location, time.Now().UTC(), l.ID)
	if err != nil {
		return models.InventoryLine{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.InventoryLine{}, ErrInventoryNotFound
	}
	return r.GetByID(l.ID)
}

var inventorySortColumns = map[string]string{
	"updated_at": "i.updated_at",
	"created_at": "i.created_at",
	"quantity":   "i.quantity",
	"sku":        "i.sku",
	"unit_cost":  "i.unit_cost",
}

func (r *PostgresInventoryRepository) Filter(f InventoryFilter) ([]models.InventoryLine, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory_lines i JOIN products p ON p.id = i.product_id WHERE 1=1`
	args := []any{}
	argIdx := 1

	if f.Search != "" {
		query += fmt.Sprintf(" AND (i.sku ILIKE $%d OR p.name ILIKE $%d OR p.category ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND p.category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	switch f.StockStatus {
	case StockStatusLow:
		query += " AND i.quantity <= i.reorder_point AND i.quantity > 0"
	case StockStatusOut:
		query += " AND i.quantity = 0"
	case StockStatusOK:
		query += " AND i.quantity > i.reorder_point"
	}

	sortCol, ok := inventorySortColumns[f.SortBy]
	if !ok {
		sortCol = "i.updated_at"
	}
	order := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		order = "ASC"
	}
	query += " ORDER BY " + sortCol + " " + order

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.InventoryLine
	for rows.Next() {
		l, err := scanInventoryLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
