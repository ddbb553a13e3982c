package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest alta de movimiento de inventario. Quantity puede
// venir en cualquier unidad convertible del producto; Unit vacío = unidad base.
type RegisterMovementRequest struct {
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"` // IN, SALE, ADJUSTMENT, TRANSFER_IN, TRANSFER_OUT
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	SupplierID  string          `json:"supplier_id"`
	CustomerID  string          `json:"customer_id"`
	ReferenceID string          `json:"reference_id"`
	Notes       string          `json:"notes"`
}

// MovementResponse movimiento registrado (cantidades en unidad base).
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BatchNumber  string          `json:"batch_number,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	CustomerID   string          `json:"customer_id,omitempty"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	MovementDate time.Time       `json:"movement_date"`
}

// StockResponse stock actual en unidad base y de venta, con clasificación.
type StockResponse struct {
	ProductID          string          `json:"product_id"`
	BaseUnit           string          `json:"base_unit"`
	StockQuantity      decimal.Decimal `json:"stock_quantity"`
	SellingUnit        string          `json:"selling_unit"`
	StockInSellingUnit decimal.Decimal `json:"stock_in_selling_unit"`
	LowStockThreshold  decimal.Decimal `json:"low_stock_threshold"`
	IsLowStock         bool            `json:"is_low_stock"`
	IsOutOfStock       bool            `json:"is_out_of_stock"`
}

// ConvertUnitsResponse resultado de GET /api/units/convert.
type ConvertUnitsResponse struct {
	Quantity  decimal.Decimal `json:"quantity"`
	FromUnit  string          `json:"from_unit"`
	ToUnit    string          `json:"to_unit"`
	Converted decimal.Decimal `json:"converted"`
	Supported bool            `json:"supported"`
}
