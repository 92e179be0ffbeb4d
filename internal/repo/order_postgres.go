package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// RecentItems returns the items belonging to the latest orders, bounding the
// sales window the forecast snapshot is computed over.
func (r *PostgresOrderRepository) RecentItems(orderLimit int) ([]models.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.created_at
		FROM order_items oi
		WHERE oi.order_id IN (SELECT id FROM orders ORDER BY created_at DESC LIMIT $1)
		ORDER BY oi.created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, orderLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
