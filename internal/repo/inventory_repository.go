package repo

import "github.com/terminalhome/ims-backend/internal/models"

// InventoryRepository defines data operations for inventory lines. Quantity
// is never written through Update; only ApplyMovement inside the movement
// repository transaction may change it.
type InventoryRepository interface {
	Create(line models.InventoryLine) (models.InventoryLine, error)
	GetAll() ([]models.InventoryLine, error)
	GetByID(id int) (models.InventoryLine, error)
	Update(line models.InventoryLine) (models.InventoryLine, error)
	Filter(f InventoryFilter) ([]models.InventoryLine, error)
}
