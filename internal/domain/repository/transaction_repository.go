package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// TransactionFilter filtros para el historial de transacciones.
type TransactionFilter struct {
	CashAccountID string // filtra por cuenta afectada (vía payments)
	Type          string
	From, To      *time.Time
	Limit, Offset int
}

// TransactionRepository define el puerto de persistencia para cabeceras de
// transacción. La cabecera de negocio es inmutable; UpdatePaymentProgress
// solo actualiza los campos derivados de cobros (amount_paid, balance_due,
// payment_status).
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	GetByNumber(number string) (*entity.Transaction, error)
	UpdatePaymentProgress(id string, amountPaid, balanceDue decimal.Decimal, status string, at time.Time) error
	List(filter TransactionFilter) ([]*entity.Transaction, error)
}

// PaymentRepository define el puerto de persistencia para pagos (append-only).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByTransaction(transactionID string) ([]*entity.Payment, error)
}

// AccountTransactionRepository define el puerto de persistencia del ledger
// de cuentas (append-only).
type AccountTransactionRepository interface {
	Create(entry *entity.AccountTransaction) error
	// SumSignedByAccount devuelve Σ montos con signo de la cuenta; junto
	// con el balance de apertura reconstruye el balance actual.
	SumSignedByAccount(accountID string) (decimal.Decimal, error)
	ListByAccount(accountID string, from, to *time.Time, limit, offset int) ([]*entity.AccountTransaction, error)
	ListByTransaction(transactionID string) ([]*entity.AccountTransaction, error)
}
