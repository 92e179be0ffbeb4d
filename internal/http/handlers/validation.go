package handlers

import (
	"strings"

	"github.com/terminalhome/ims-backend/internal/models"
)

type FieldValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateInventory(req InventoryRequest) []FieldValidationError {
	errs := []FieldValidationError{}
	if req.ProductID <= 0 {
		errs = append(errs, FieldValidationError{Field: "ProductID", Description: "ProductID is required"})
	}
	if strings.TrimSpace(req.SKU) == "" {
		errs = append(errs, FieldValidationError{Field: "SKU", Description: "SKU is required"})
	}
	if req.Quantity < 0 {
		errs = append(errs, FieldValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if req.ReorderPoint < 0 {
		errs = append(errs, FieldValidationError{Field: "ReorderPoint", Description: "ReorderPoint cannot be negative"})
	}
	if req.UnitCost < 0 {
		errs = append(errs, FieldValidationError{Field: "UnitCost", Description: "UnitCost cannot be negative"})
	}
	return errs
}

func validateMovement(req MovementRequest) []FieldValidationError {
	errs := []FieldValidationError{}
	if req.InventoryLineID <= 0 {
		errs = append(errs, FieldValidationError{Field: "InventoryLineID", Description: "InventoryLineID is required"})
	}
	if !models.MovementKind(req.Kind).Valid() {
		errs = append(errs, FieldValidationError{Field: "Kind", Description: "Kind must be one of in, out, adjustment, return"})
	}
	return errs
}
