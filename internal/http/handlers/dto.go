package handlers

import (
	"time"

	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

type InventoryRequest struct {
	ProductID    int     `json:"product_id"`
	SKU          string  `json:"sku"`
	Quantity     int     `json:"quantity"`
	ReservedQty  int     `json:"reserved_qty"`
	ReorderPoint int     `json:"reorder_point"`
	ReorderQty   int     `json:"reorder_qty"`
	UnitCost     float64 `json:"unit_cost"`
	Location     string  `json:"location"`
}

type InventoryResponse struct {
	ID              int        `json:"id"`
	ProductID       int        `json:"product_id"`
	ProductName     string     `json:"product_name,omitempty"`
	Category        string     `json:"category,omitempty"`
	SKU             string     `json:"sku"`
	Quantity        int        `json:"quantity"`
	ReservedQty     int        `json:"reserved_qty"`
	ReorderPoint    int        `json:"reorder_point"`
	ReorderQty      int        `json:"reorder_qty"`
	UnitCost        float64    `json:"unit_cost"`
	Location        string     `json:"location,omitempty"`
	LastRestockedAt *time.Time `json:"last_restocked_at,omitempty"`
	StockStatus     string     `json:"stock_status"`
}

func toInventoryResponse(l models.InventoryLine) InventoryResponse {
	status := repo.StockStatusOK
	if l.Quantity == 0 {
		status = repo.StockStatusOut
	} else if l.Quantity <= l.ReorderPoint {
		status = repo.StockStatusLow
	}
	return InventoryResponse{
		ID:              l.ID,
		ProductID:       l.ProductID,
		ProductName:     l.ProductName,
		Category:        l.Category,
		SKU:             l.SKU,
		Quantity:        l.Quantity,
		ReservedQty:     l.ReservedQty,
		ReorderPoint:    l.ReorderPoint,
		ReorderQty:      l.ReorderQty,
		UnitCost:        l.UnitCost,
		Location:        l.Location,
		LastRestockedAt: l.LastRestockedAt,
		StockStatus:     status,
	}
}

type InventoryListResult struct {
	Data  []InventoryResponse `json:"data"`
	Stats repo.Stats          `json:"stats"`
}

type MovementRequest struct {
	InventoryLineID int    `json:"inventory_line_id"`
	Kind            string `json:"kind"`
	Amount          int    `json:"amount"`
	Reason          string `json:"reason,omitempty"`
	Reference       string `json:"reference,omitempty"`
}

type MovementResponse struct {
	ID              int       `json:"id"`
	InventoryLineID int       `json:"inventory_line_id"`
	Kind            string    `json:"kind"`
	Amount          int       `json:"amount"`
	Reason          string    `json:"reason,omitempty"`
	Reference       string    `json:"reference,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toMovementResponse(m models.StockMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		InventoryLineID: m.InventoryLineID,
		Kind:            string(m.Kind),
		Amount:          m.Amount,
		Reason:          m.Reason,
		Reference:       m.Reference,
		CreatedAt:       m.CreatedAt,
	}
}

type MovementRecordResult struct {
	Movement      MovementResponse  `json:"movement"`
	InventoryLine InventoryResponse `json:"inventory_line"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta,omitempty"`
}

// MarkAlertsReadRequest accepts either the string "all" or a list of ids.
type MarkAlertsReadRequest struct {
	IDs any `json:"ids"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
