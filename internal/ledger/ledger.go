// Package ledger records stock movements and keeps the cached line quantity
// consistent with the movement history.
package ledger

import (
	"errors"
	"fmt"
	"log"

	"github.com/terminalhome/ims-backend/internal/alerts"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

var (
	// ErrInvalidAmount is returned for a non-positive amount on in/out/return,
	// or a negative amount on adjustment.
	ErrInvalidAmount = errors.New("movement amount is invalid for its kind")
	// ErrUnknownKind is returned for a movement kind outside in/out/adjustment/return.
	ErrUnknownKind = errors.New("unknown movement kind")
)

type Service struct {
	movements repo.MovementRepository
	alerts    *alerts.Engine
}

func New(movements repo.MovementRepository, alertEngine *alerts.Engine) *Service {
	return &Service{movements: movements, alerts: alertEngine}
}

type RecordInput struct {
	InventoryLineID int
	Kind            models.MovementKind
	Amount          int
	Reason          string
	Reference       string
}

// Record validates and records one stock movement, then evaluates alerts on
// the post-write quantity.
//
// Amount semantics depend on the kind: for in, out and return it is a
// positive delta; for adjustment it is the new absolute quantity, not a
// delta. An out larger than the current stock floors the quantity at zero,
// but the movement row still stores the requested amount, so the movement
// history does not necessarily sum to the cached quantity once a line has
// been driven to zero. That is a known property of the audit trail, kept so
// the unmet demand stays visible.
func (s *Service) Record(in RecordInput) (models.StockMovement, models.InventoryLine, error) {
	if !in.Kind.Valid() {
		return models.StockMovement{}, models.InventoryLine{}, fmt.Errorf("%w: %q", ErrUnknownKind, in.Kind)
	}
	if in.Kind == models.MovementAdjustment {
		if in.Amount < 0 {
			return models.StockMovement{}, models.InventoryLine{}, ErrInvalidAmount
		}
	} else if in.Amount <= 0 {
		return models.StockMovement{}, models.InventoryLine{}, ErrInvalidAmount
	}

	movement, line, err := s.movements.Record(models.StockMovement{
		InventoryLineID: in.InventoryLineID,
		Kind:            in.Kind,
		Amount:          in.Amount,
		Reason:          in.Reason,
		Reference:       in.Reference,
	})
	if err != nil {
		return models.StockMovement{}, models.InventoryLine{}, err
	}

	// The movement is committed; an alert failure must not undo it.
	if _, err := s.alerts.EvaluateAndAlert(line); err != nil {
		log.Printf("⚠️ alert evaluation failed for line %d: %v", line.ID, err)
	}

	return movement, line, nil
}
