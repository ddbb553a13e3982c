package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta de efectivo.
const (
	AccountTypeCash        = "cash"
	AccountTypeBank        = "bank_account"
	AccountTypeMobileMoney = "mobile_money"
	AccountTypeCreditCard  = "credit_card"
	AccountTypePettyCash   = "petty_cash"
)

// ValidAccountType indica si el tipo de cuenta es uno de los soportados.
func ValidAccountType(t string) bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeMobileMoney,
		AccountTypeCreditCard, AccountTypePettyCash:
		return true
	}
	return false
}

// CashAccount representa una cuenta de dinero de la tienda.
// Invariante: CurrentBalance == OpeningBalance + Σ montos con signo de sus
// AccountTransaction; se recalcula y persiste en cada asiento, nunca se
// edita directamente. El balance puede quedar negativo (gastos informales).
type CashAccount struct {
	ID             string
	ShopID         string
	Name           string
	Type           string // cash, bank_account, mobile_money, credit_card, petty_cash
	Currency       string // código ISO 4217 (ej: COP, USD)
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal // derivado del ledger
	IsDefault      bool
	IsActive       bool
	SyncStatus     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
