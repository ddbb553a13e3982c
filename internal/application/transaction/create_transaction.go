package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/cashaccount"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/pricing"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

// línea validada lista para ejecutar dentro de la transacción.
type preparedLine struct {
	product     *entity.Product
	qtyBase     decimal.Decimal
	lineTotal   decimal.Decimal
	batchNumber string
	expiryDate  *time.Time
}

// CreateTransactionWithPayments es el punto de entrada para venta, compra,
// gasto e ingreso: crea la cabecera con balance_due/payment_status
// derivados, un StockMovement por línea (tras verificación de stock) y un
// par Payment+AccountTransaction por cada split de pago, todo dentro de un
// solo alcance atómico.
func (o *Orchestrator) CreateTransactionWithPayments(ctx context.Context, shopID, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	switch in.Type {
	case entity.TransactionTypeSale, entity.TransactionTypePurchase,
		entity.TransactionTypeExpense, entity.TransactionTypeIncome:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.TaxAmount.IsNegative() || in.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txDate := now
	if in.TransactionDate != nil {
		txDate = *in.TransactionDate
	}

	// Validación de líneas fuera de la tx (solo lectura)
	withItems := in.Type == entity.TransactionTypeSale || in.Type == entity.TransactionTypePurchase
	var lines []preparedLine
	var subtotal decimal.Decimal
	if withItems {
		if len(in.Items) == 0 {
			return nil, domain.ErrInvalidInput
		}
		for _, item := range in.Items {
			if item.ProductID == "" || !item.Quantity.IsPositive() || item.UnitPrice.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			product, err := o.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrProductNotFound
			}
			qtyBase, err := units.ToBaseUnits(product, item.Quantity, item.Unit)
			if err != nil {
				return nil, err
			}
			unitPrice := item.UnitPrice
			if unitPrice.IsZero() {
				// precio por la unidad indicada, derivado del precio por unidad base
				if in.Type == entity.TransactionTypePurchase {
					unitPrice, err = pricing.CostFor(product, decimal.NewFromInt(1), item.Unit)
				} else {
					unitPrice, err = pricing.PriceFor(product, decimal.NewFromInt(1), item.Unit)
				}
				if err != nil {
					return nil, err
				}
			}
			lineTotal := item.Quantity.Mul(unitPrice)
			subtotal = subtotal.Add(lineTotal)
			lines = append(lines, preparedLine{
				product:     product,
				qtyBase:     qtyBase,
				lineTotal:   lineTotal,
				batchNumber: item.BatchNumber,
				expiryDate:  item.ExpiryDate,
			})
		}
	} else {
		if !in.Amount.IsPositive() {
			return nil, domain.ErrInvalidAmount
		}
		subtotal = in.Amount
	}

	totalAmount := subtotal.Add(in.TaxAmount).Sub(in.DiscountAmount)
	if totalAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validación de splits fuera de la tx: cuentas existentes y montos > 0
	var amountPaid decimal.Decimal
	accountsByID := make(map[string]*entity.CashAccount, len(in.Payments))
	for _, split := range in.Payments {
		if !split.Amount.IsPositive() {
			return nil, domain.ErrInvalidAmount
		}
		account, err := o.accountRepo.GetByID(split.CashAccountID)
		if err != nil {
			return nil, err
		}
		if account == nil || !account.IsActive {
			return nil, domain.ErrAccountNotFound
		}
		accountsByID[split.CashAccountID] = account
		amountPaid = amountPaid.Add(split.Amount)
	}
	if amountPaid.GreaterThan(totalAmount) {
		return nil, domain.ErrInvalidInput
	}

	balanceDue := totalAmount.Sub(amountPaid)
	// Venta a crédito sin contraparte: no hay contra quién registrar la deuda
	if in.Type == entity.TransactionTypeSale && balanceDue.IsPositive() && in.ContactID == "" {
		return nil, domain.ErrInvalidCounterparty
	}

	header := &entity.Transaction{
		ID:                uuid.New().String(),
		ShopID:            shopID,
		Type:              in.Type,
		TransactionNumber: numberFor(in.Type, now),
		Subtotal:          subtotal,
		TaxAmount:         in.TaxAmount,
		DiscountAmount:    in.DiscountAmount,
		TotalAmount:       totalAmount,
		AmountPaid:        amountPaid,
		BalanceDue:        balanceDue,
		PaymentStatus:     entity.PaymentStatusFor(totalAmount, amountPaid),
		TransactionDate:   txDate,
		DueDate:           in.DueDate,
		ContactID:         in.ContactID,
		ExpenseCategoryID: in.ExpenseCategoryID,
		Notes:             in.Notes,
		SyncStatus:        entity.SyncStatusPending,
		CreatedAt:         now,
		CreatedBy:         userID,
		UpdatedAt:         now,
	}

	var createdPayments []*entity.Payment

	// Un solo alcance atómico para cabecera, movimientos, pagos y asientos.
	// Cualquier error (ej: stock insuficiente) revierte TODO.
	err := o.txRunner.RunLedger(ctx, func(
		txRepo repository.TransactionRepository,
		payRepo repository.PaymentRepository,
		entryRepo repository.AccountTransactionRepository,
		accountRepo repository.CashAccountRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := txRepo.Create(header); err != nil {
			return err
		}

		// Un movimiento de inventario por línea, con verificación de stock
		movType := entity.MovementTypeSALE
		if in.Type == entity.TransactionTypePurchase {
			movType = entity.MovementTypeIN
		}
		for _, line := range lines {
			movInput := inventory.MovementInput{
				ShopID:      shopID,
				UserID:      userID,
				ProductID:   line.product.ID,
				Type:        movType,
				Quantity:    line.qtyBase, // ya en unidad base
				BatchNumber: line.batchNumber,
				ExpiryDate:  line.expiryDate,
				ReferenceID: header.ID,
			}
			if in.Type == entity.TransactionTypeSale {
				movInput.CustomerID = in.ContactID
			} else {
				movInput.SupplierID = in.ContactID
			}
			if _, err := o.inventoryUC.RecordInTx(movRepo, productRepo, movInput, now); err != nil {
				return err
			}
		}

		// Un par Payment + AccountTransaction por split
		entryType := entryTypeFor(in.Type)
		for _, split := range in.Payments {
			payment := &entity.Payment{
				ID:              uuid.New().String(),
				TransactionID:   header.ID,
				CashAccountID:   split.CashAccountID,
				Amount:          split.Amount,
				PaymentMethod:   split.PaymentMethod,
				ReferenceNumber: split.ReferenceNumber,
				PaymentDate:     txDate,
				SyncStatus:      entity.SyncStatusPending,
				CreatedAt:       now,
				CreatedBy:       userID,
			}
			if err := payRepo.Create(payment); err != nil {
				return err
			}
			if _, err := cashaccount.PostEntryInTx(entryRepo, accountRepo,
				split.CashAccountID, split.Amount, entryType,
				cashaccount.EntryRef{
					TransactionID: header.ID,
					PaymentID:     payment.ID,
					Description:   header.TransactionNumber,
					UserID:        userID,
				}, now); err != nil {
				return err
			}
			createdPayments = append(createdPayments, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(header, createdPayments), nil
}
