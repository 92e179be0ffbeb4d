package models

import "time"

// MovementKind determines how a movement amount is applied to the line
// quantity: in/return add, out subtracts (floored at zero), adjustment sets
// the quantity to the amount directly.
type MovementKind string

const (
	MovementIn         MovementKind = "in"
	MovementOut        MovementKind = "out"
	MovementAdjustment MovementKind = "adjustment"
	MovementReturn     MovementKind = "return"
)

func (k MovementKind) Valid() bool {
	switch k {
	case MovementIn, MovementOut, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

// StockMovement is an append-only record of a single stock change. Rows are
// never updated or deleted.
type StockMovement struct {
	ID              int          `json:"id"`
	InventoryLineID int          `json:"inventory_line_id"`
	Kind            MovementKind `json:"kind"`
	Amount          int          `json:"amount"`
	Reason          string       `json:"reason,omitempty"`
	Reference       string       `json:"reference,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}
