package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest alta de cuenta de efectivo.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"` // cash, bank_account, mobile_money, credit_card, petty_cash
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	IsDefault      bool            `json:"is_default"`
}

// PostEntryRequest asiento manual sobre una cuenta (depósito o retiro).
type PostEntryRequest struct {
	Type        string          `json:"type"` // deposit, withdrawal
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AccountResponse cuenta con su balance actual derivado.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Formatted      string          `json:"formatted_balance"`
	IsDefault      bool            `json:"is_default"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LedgerEntryResponse asiento del ledger de una cuenta.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	CashAccountID string          `json:"cash_account_id"`
	TransactionID string          `json:"transaction_id,omitempty"`
	PaymentID     string          `json:"payment_id,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description,omitempty"`
	EntryDate     time.Time       `json:"entry_date"`
}
