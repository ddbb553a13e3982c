package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de venta o compra. Quantity en la unidad indicada
// (vacía = unidad base); UnitPrice es por esa misma unidad y si viene en
// cero se deriva del precio por unidad base del producto.
type LineItemRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
}

// PaymentSplitRequest porción del total pagada por una cuenta específica.
type PaymentSplitRequest struct {
	CashAccountID   string          `json:"cash_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
}

// CreateTransactionRequest evento de negocio: venta, compra, gasto o ingreso.
// Para venta/compra el subtotal sale de Items; para gasto/ingreso de Amount.
type CreateTransactionRequest struct {
	Type              string                `json:"type"` // sale, purchase, expense, income
	Items             []LineItemRequest     `json:"items"`
	Amount            decimal.Decimal       `json:"amount"` // solo expense/income
	TaxAmount         decimal.Decimal       `json:"tax_amount"`
	DiscountAmount    decimal.Decimal       `json:"discount_amount"`
	Payments          []PaymentSplitRequest `json:"payments"`
	ContactID         string                `json:"contact_id"`
	ExpenseCategoryID string                `json:"expense_category_id"`
	TransactionDate   *time.Time            `json:"transaction_date"`
	DueDate           *time.Time            `json:"due_date"`
	Notes             string                `json:"notes"`
}

// TransferRequest transferencia entre dos cuentas de la misma moneda.
type TransferRequest struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description"`
	ReferenceNumber      string          `json:"reference_number"`
	TransferDate         *time.Time      `json:"transfer_date"`
}

// CollectPaymentRequest abono posterior sobre una transacción a crédito.
type CollectPaymentRequest struct {
	CashAccountID   string          `json:"cash_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	CashAccountID   string          `json:"cash_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentDate     time.Time       `json:"payment_date"`
}

// TransactionResponse cabecera con sus pagos.
type TransactionResponse struct {
	ID                string            `json:"id"`
	Type              string            `json:"type"`
	TransactionNumber string            `json:"transaction_number"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	TaxAmount         decimal.Decimal   `json:"tax_amount"`
	DiscountAmount    decimal.Decimal   `json:"discount_amount"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	AmountPaid        decimal.Decimal   `json:"amount_paid"`
	BalanceDue        decimal.Decimal   `json:"balance_due"`
	PaymentStatus     string            `json:"payment_status"`
	TransactionDate   time.Time         `json:"transaction_date"`
	DueDate           *time.Time        `json:"due_date,omitempty"`
	ContactID         string            `json:"contact_id,omitempty"`
	ExpenseCategoryID string            `json:"expense_category_id,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	Payments          []PaymentResponse `json:"payments"`
}
