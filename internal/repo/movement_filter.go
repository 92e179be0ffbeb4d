package repo

import (
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
)

type MovementFilter struct {
	InventoryLineID *int
	Kind            *models.MovementKind
	Since           *time.Time
	Until           *time.Time
	Offset          *int
	Limit           *int
}
