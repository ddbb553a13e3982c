package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

// LedgerUseCase registra movimientos del ledger de inventario de forma
// transaccional (IN, SALE, ADJUSTMENT, TRANSFER_IN, TRANSFER_OUT) con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento. Quantity puede venir
// en cualquier unidad convertible del producto; se normaliza a unidad base
// antes de tocar el ledger. Para ADJUSTMENT, Quantity es un delta con signo.
type MovementInput struct {
	ShopID      string
	UserID      string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal
	Unit        string // vacío = unidad base
	BatchNumber string
	ExpiryDate  *time.Time
	SupplierID  string
	CustomerID  string
	ReferenceID string
	Notes       string
}

// RecordMovement valida, convierte a unidad base e inicia la transacción:
// bloquea la fila del producto, recalcula el stock desde el ledger, rechaza
// salidas que lo dejarían negativo, agrega el movimiento y persiste el
// stock derivado. Commit o Rollback completo.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.ProductID == "" || !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Type == entity.MovementTypeADJUSTMENT {
		if input.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	} else if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	qtyBase, err := units.ToBaseUnits(product, input.Quantity, input.Unit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var mov *entity.StockMovement

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err = applyMovement(movRepo, productRepo, input, qtyBase, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// applyMovement ejecuta un movimiento usando repositorios ya atados a una
// transacción: bloquea la fila del producto, verifica stock y agrega el
// evento. Lo usa RecordMovement y, vía RecordInTx, el orquestador de
// transacciones dentro de SU misma transacción.
func applyMovement(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	qtyBase decimal.Decimal,
	now time.Time,
) (*entity.StockMovement, error) {
	// Bloquea la fila del producto para evitar condiciones de carrera
	locked, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, domain.ErrProductNotFound
	}

	// Stock actual recalculado desde el ledger, no desde el campo derivado
	current, err := movRepo.SumSignedByProduct(input.ProductID)
	if err != nil {
		return nil, err
	}

	var newStock decimal.Decimal
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeTransferIn:
		newStock = current.Add(qtyBase)
	case entity.MovementTypeSALE, entity.MovementTypeTransferOut:
		newStock = current.Sub(qtyBase)
	case entity.MovementTypeADJUSTMENT:
		newStock = current.Add(qtyBase) // delta con signo
	default:
		return nil, domain.ErrInvalidInput
	}
	if newStock.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    input.ProductID,
		ShopID:       input.ShopID,
		Type:         input.Type,
		Quantity:     qtyBase,
		BatchNumber:  input.BatchNumber,
		ExpiryDate:   input.ExpiryDate,
		SupplierID:   input.SupplierID,
		CustomerID:   input.CustomerID,
		ReferenceID:  input.ReferenceID,
		Notes:        input.Notes,
		MovementDate: now,
		SyncStatus:   entity.SyncStatusPending,
		CreatedAt:    now,
		CreatedBy:    input.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	// Persiste el stock derivado en products (misma transacción)
	if err := productRepo.UpdateStock(input.ProductID, newStock, now); err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordInTx registra un movimiento usando los repositorios proporcionados
// (misma transacción del caller). input.Quantity debe venir YA en unidad
// base. Lo invoca el orquestador de transacciones por cada línea de
// venta/compra; si retorna error (ej: ErrInsufficientStock) el caller debe
// hacer rollback de todo.
func (uc *LedgerUseCase) RecordInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	return applyMovement(movRepo, productRepo, input, input.Quantity, now)
}

// CurrentStock devuelve el stock actual en unidad base y de venta, con la
// clasificación de stock bajo/agotado.
func (uc *LedgerUseCase) CurrentStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	inSelling, err := units.FromBaseUnits(product, product.StockQuantity, product.SellingUnit)
	if err != nil {
		// unidad de venta sin conversión definida: reportar en base
		inSelling = product.StockQuantity
	}
	return &dto.StockResponse{
		ProductID:          product.ID,
		BaseUnit:           product.BaseUnit,
		StockQuantity:      product.StockQuantity,
		SellingUnit:        product.SellingUnit,
		StockInSellingUnit: inSelling,
		LowStockThreshold:  product.LowStockThreshold,
		IsLowStock:         product.IsLowStock(),
		IsOutOfStock:       product.IsOutOfStock(),
	}, nil
}

// LowStock devuelve el stock de los productos activos bajo su umbral.
func (uc *LedgerUseCase) LowStock(ctx context.Context, limit, offset int) ([]*dto.StockResponse, error) {
	products, err := uc.productRepo.ListLowStock(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockResponse, 0, len(products))
	for _, p := range products {
		inSelling, err := units.FromBaseUnits(p, p.StockQuantity, p.SellingUnit)
		if err != nil {
			inSelling = p.StockQuantity
		}
		out = append(out, &dto.StockResponse{
			ProductID:          p.ID,
			BaseUnit:           p.BaseUnit,
			StockQuantity:      p.StockQuantity,
			SellingUnit:        p.SellingUnit,
			StockInSellingUnit: inSelling,
			LowStockThreshold:  p.LowStockThreshold,
			IsLowStock:         p.IsLowStock(),
			IsOutOfStock:       p.IsOutOfStock(),
		})
	}
	return out, nil
}

// History devuelve los movimientos de un producto en un rango de fechas.
func (uc *LedgerUseCase) History(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}
