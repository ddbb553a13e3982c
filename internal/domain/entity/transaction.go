package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de negocio.
const (
	TransactionTypeSale     = "sale"
	TransactionTypePurchase = "purchase"
	TransactionTypeExpense  = "expense"
	TransactionTypeIncome   = "income"
	TransactionTypeTransfer = "transfer"
)

// Estados de pago de una transacción.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusDue     = "due"
)

// ValidTransactionType indica si el tipo es uno de los soportados.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeSale, TransactionTypePurchase, TransactionTypeExpense,
		TransactionTypeIncome, TransactionTypeTransfer:
		return true
	}
	return false
}

// PaymentStatusFor deriva el estado de pago a partir de total y pagado:
// paid si pagado >= total, partial si pagado > 0, due en otro caso.
func PaymentStatusFor(total, paid decimal.Decimal) string {
	if paid.GreaterThanOrEqual(total) {
		return PaymentStatusPaid
	}
	if paid.IsPositive() {
		return PaymentStatusPartial
	}
	return PaymentStatusDue
}

// Transaction es la cabecera de un evento de negocio (venta, compra, gasto,
// ingreso o transferencia). Los campos de negocio son inmutables tras crear;
// AmountPaid/BalanceDue/PaymentStatus son derivados que se actualizan al
// registrar cobros posteriores (pares Payment + AccountTransaction).
// Invariante: TotalAmount = Subtotal + TaxAmount - DiscountAmount.
type Transaction struct {
	ID                string
	ShopID            string
	Type              string
	TransactionNumber string // único (ej: SAL-20250115-000123)
	Subtotal          decimal.Decimal
	TaxAmount         decimal.Decimal
	DiscountAmount    decimal.Decimal
	TotalAmount       decimal.Decimal
	AmountPaid        decimal.Decimal
	BalanceDue        decimal.Decimal // TotalAmount - AmountPaid
	PaymentStatus     string          // paid, partial, due
	TransactionDate   time.Time
	DueDate           *time.Time
	ContactID         string // contraparte de crédito (cliente o proveedor)
	ExpenseCategoryID string
	Notes             string
	SyncStatus        string
	CreatedAt         time.Time
	CreatedBy         string // UserID
	UpdatedAt         time.Time
}
