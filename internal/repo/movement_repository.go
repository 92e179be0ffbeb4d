package repo

import "github.com/terminalhome/ims-backend/internal/models"

// MovementRepository records and lists stock movements. Record appends the
// movement row and applies its quantity change to the inventory line in a
// single transaction, returning the stored movement and the post-write line.
type MovementRepository interface {
	Record(m models.StockMovement) (models.StockMovement, models.InventoryLine, error)
	Filter(f MovementFilter) ([]models.StockMovement, int, error)
}
