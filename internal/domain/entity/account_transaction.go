package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del ledger de cuentas. deposit y transfer_in acreditan
// (suman al balance); withdrawal y transfer_out debitan.
const (
	EntryTypeDeposit     = "deposit"
	EntryTypeWithdrawal  = "withdrawal"
	EntryTypeTransferIn  = "transfer_in"
	EntryTypeTransferOut = "transfer_out"
)

// ValidEntryType indica si el tipo de asiento es uno de los soportados.
func ValidEntryType(t string) bool {
	switch t {
	case EntryTypeDeposit, EntryTypeWithdrawal, EntryTypeTransferIn, EntryTypeTransferOut:
		return true
	}
	return false
}

// EntryCredits indica si el tipo suma al balance de la cuenta.
func EntryCredits(t string) bool {
	return t == EntryTypeDeposit || t == EntryTypeTransferIn
}

// AccountTransaction es un asiento inmutable del ledger de una cuenta
// (append-only). Amount es magnitud positiva; el signo lo da Type.
// Invariante: BalanceAfter = BalanceBefore ± Amount según el tipo.
type AccountTransaction struct {
	ID            string
	CashAccountID string
	TransactionID string // opcional: transacción que originó el asiento
	PaymentID     string // opcional: pago que originó el asiento
	Type          string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Description   string
	EntryDate     time.Time
	SyncStatus    string
	CreatedAt     time.Time
	CreatedBy     string
}

// SignedAmount devuelve el efecto del asiento sobre el balance.
func (e *AccountTransaction) SignedAmount() decimal.Decimal {
	if EntryCredits(e.Type) {
		return e.Amount
	}
	return e.Amount.Neg()
}
