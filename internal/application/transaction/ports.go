package transaction

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye TODOS
// los repositorios que un evento de negocio puede tocar: cabecera, pagos,
// ledger de cuentas y ledger de inventario. O se confirman todas las filas
// de {Transaction, Payments, AccountTransactions, StockMovements} del
// evento, o ninguna.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		payRepo repository.PaymentRepository,
		entryRepo repository.AccountTransactionRepository,
		accountRepo repository.CashAccountRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
