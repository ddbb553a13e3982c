package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago habituales (el campo es libre; estos son los usados por la app).
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodMobile   = "mobile_money"
	PaymentMethodTransfer = "transfer"
)

// Payment es un movimiento de dinero atado a exactamente una Transaction y
// una CashAccount. Una transacción tiene 0..n pagos (0 para venta a crédito
// sin abono; exactamente 2 para una transferencia).
type Payment struct {
	ID              string
	TransactionID   string
	CashAccountID   string
	Amount          decimal.Decimal // magnitud positiva
	PaymentMethod   string
	ReferenceNumber string
	PaymentDate     time.Time
	SyncStatus      string
	CreatedAt       time.Time
	CreatedBy       string
}
