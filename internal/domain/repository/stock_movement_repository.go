package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger de
// inventario (append-only: solo Create y lecturas).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// SumSignedByProduct devuelve Σ cantidades con signo del producto:
	// el stock actual según el ledger.
	SumSignedByProduct(productID string) (decimal.Decimal, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(referenceID string) ([]*entity.StockMovement, error)
}
