package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. IN y TRANSFER_IN suman stock;
// SALE y TRANSFER_OUT restan; ADJUSTMENT aplica un delta con signo.
const (
	MovementTypeIN          = "IN"
	MovementTypeSALE        = "SALE"
	MovementTypeADJUSTMENT  = "ADJUSTMENT"
	MovementTypeTransferIn  = "TRANSFER_IN"
	MovementTypeTransferOut = "TRANSFER_OUT"
)

// ValidMovementType indica si el tipo de movimiento es uno de los soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeSALE, MovementTypeADJUSTMENT,
		MovementTypeTransferIn, MovementTypeTransferOut:
		return true
	}
	return false
}

// StockMovement es un evento inmutable del ledger de inventario (append-only).
// Quantity se guarda SIEMPRE en unidad base: magnitud positiva para
// IN/SALE/TRANSFER_*, delta con signo para ADJUSTMENT.
type StockMovement struct {
	ID           string
	ProductID    string
	ShopID       string
	Type         string
	Quantity     decimal.Decimal
	BatchNumber  string
	ExpiryDate   *time.Time
	SupplierID   string
	CustomerID   string
	ReferenceID  string // Transaction que originó el movimiento
	Notes        string
	MovementDate time.Time
	SyncStatus   string
	CreatedAt    time.Time
	CreatedBy    string // UserID
}

// SignedQuantity devuelve el efecto del movimiento sobre el stock:
// positivo para entradas, negativo para salidas, el delta tal cual en ajustes.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	switch m.Type {
	case MovementTypeSALE, MovementTypeTransferOut:
		return m.Quantity.Neg()
	default:
		return m.Quantity
	}
}
