package cashaccount

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ledger de cuentas atados a esa tx: el asiento y el
// balance derivado se escriben juntos o no se escribe ninguno.
type TxRunner interface {
	RunAccounts(ctx context.Context, fn func(
		entryRepo repository.AccountTransactionRepository,
		accountRepo repository.CashAccountRepository,
	) error) error
}
