package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/terminalhome/ims-backend/internal/alerts"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

func newTestService(t *testing.T) (*Service, *repo.InMemoryInventoryRepository, *repo.InMemoryAlertRepository) {
	t.Helper()
	inventory := repo.NewInMemoryInventoryRepository()
	movements := repo.NewInMemoryMovementRepository(inventory)
	alertRepo := repo.NewInMemoryAlertRepository()
	return New(movements, alerts.NewEngine(alertRepo)), inventory, alertRepo
}

func seedLine(t *testing.T, inventory *repo.InMemoryInventoryRepository, qty, reorderPoint int) models.InventoryLine {
	t.Helper()
	line, err := inventory.Create(models.InventoryLine{
		ProductID:    1,
		ProductName:  "Oak Coffee Table",
		SKU:          "TRM-TBL-0001",
		Quantity:     qty,
		ReorderPoint: reorderPoint,
		ReorderQty:   10,
		UnitCost:     120.50,
	})
	if err != nil {
		t.Fatalf("seeding line: %v", err)
	}
	return line
}

func TestRecordInboundIncreasesQuantityAndRestockTime(t *testing.T) {
	svc, inventory, _ := newTestService(t)
	line := seedLine(t, inventory, 3, 5)

	movement, updated, err := svc.Record(RecordInput{
		InventoryLineID: line.ID,
		Kind:            models.MovementIn,
		Amount:          7,
		Reason:          "Restock delivery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", updated.Quantity)
	}
	if updated.LastRestockedAt == nil {
		t.Error("last restocked timestamp not set on inbound movement")
	}
	if movement.Amount != 7 || movement.Kind != models.MovementIn {
		t.Errorf("stored movement = %+v", movement)
	}
}

func TestRecordReturnDoesNotTouchRestockTime(t *testing.T) {
	svc, inventory, _ := newTestService(t)
	line := seedLine(t, inventory, 3, 1)

	_, updated, err := svc.Record(RecordInput{InventoryLineID: line.ID, Kind: models.MovementReturn, Amount: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", updated.Quantity)
	}
	if updated.LastRestockedAt != nil {
		t.Error("return movement must not set the restock timestamp")
	}
}

func TestRecordOutboundFloorsAtZeroButStoresRequestedAmount(t *testing.T) {
	svc, inventory, _ := newTestService(t)
	line := seedLine(t, inventory, 5, 2)

	movement, updated, err := svc.Record(RecordInput{InventoryLineID: line.ID, Kind: models.MovementOut, Amount: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", updated.Quantity)
	}
	// The audit row keeps the requested amount, not the applied delta.
	if movement.Amount != 8 {
		t.Errorf("movement amount = %d, want 8", movement.Amount)
	}
}

func TestRecordAdjustmentSetsAbsoluteQuantity(t *testing.T) {
	svc, inventory, _ := newTestService(t)
	line := seedLine(t, inventory, 12, 2)

	for _, target := range []int{30, 0} {
		_, updated, err := svc.Record(RecordInput{InventoryLineID: line.ID, Kind: models.MovementAdjustment, Amount: target})
		if err != nil {
			t.Fatalf("adjustment to %d: %v", target, err)
		}
		if updated.Quantity != target {
			t.Errorf("quantity = %d, want %d", updated.Quantity, target)
		}
	}
}

func TestRecordValidation(t *testing.T) {
	svc, inventory, _ := newTestService(t)
	line := seedLine(t, inventory, 5, 2)

	tests := []struct {
		name    string
		kind    models.MovementKind
		amount  int
		wantErr error
	}{
		{"zero inbound", models.MovementIn, 0, ErrInvalidAmount},
		{"negative outbound", models.MovementOut, -3, ErrInvalidAmount},
		{"negative adjustment", models.MovementAdjustment, -1, ErrInvalidAmount},
		{"unknown kind", models.MovementKind("transfer"), 5, ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Record(RecordInput{InventoryLineID: line.ID, Kind: tt.kind, Amount: tt.amount})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	current, _ := inventory.GetByID(line.ID)
	if current.Quantity != 5 {
		t.Errorf("rejected movements must not change quantity, got %d", current.Quantity)
	}
}

func TestRecordUnknownLine(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, _, err := svc.Record(RecordInput{InventoryLineID: 999, Kind: models.MovementIn, Amount: 1})
	if !errors.Is(err, repo.ErrInventoryNotFound) {
		t.Errorf("err = %v, want ErrInventoryNotFound", err)
	}
}

func TestRecordConcurrentWritersSerialize(t *testing.T) {
	svc, inventory, _ := newTestService(t)
	const writers = 50
	line := seedLine(t, inventory, writers, 0)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.Record(RecordInput{InventoryLineID: line.ID, Kind: models.MovementOut, Amount: 1}); err != nil {
				t.Errorf("concurrent record: %v", err)
			}
		}()
	}
	wg.Wait()

	// No lost updates: every decrement lands exactly once.
	current, err := inventory.GetByID(line.ID)
	if err != nil {
		t.Fatalf("fetching line: %v", err)
	}
	if current.Quantity != 0 {
		t.Errorf("quantity = %d, want 0 after %d concurrent decrements", current.Quantity, writers)
	}
}

func TestRecordTriggersAlertOnBreach(t *testing.T) {
	svc, inventory, alertRepo := newTestService(t)
	line := seedLine(t, inventory, 10, 5)

	if _, _, err := svc.Record(RecordInput{InventoryLineID: line.ID, Kind: models.MovementOut, Amount: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	open, err := alertRepo.List(false)
	if err != nil {
		t.Fatalf("listing alerts: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("got %d alerts, want 1", len(open))
	}
	if open[0].Kind != models.AlertLowStock || open[0].Severity != models.SeverityWarning {
		t.Errorf("alert = %+v, want low_stock/warning", open[0])
	}
}
