package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/cashaccount"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/transaction"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner simula el alcance atómico sobre el Store: toma un snapshot del
// estado antes de ejecutar fn y lo restaura si fn falla. Así el contrato
// todo-o-nada de los escritores se cumple igual que con una tx de BD.
type TxRunner struct {
	store *Store
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ cashaccount.TxRunner = (*TxRunner)(nil)
var _ transaction.TxRunner = (*TxRunner)(nil)

// NewTxRunner crea un TxRunner sobre el Store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.store.snapshot()
	if err := fn(r.store.Movements(), r.store.Products()); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) RunAccounts(ctx context.Context, fn func(
	entryRepo repository.AccountTransactionRepository,
	accountRepo repository.CashAccountRepository,
) error) error {
	snap := r.store.snapshot()
	if err := fn(r.store.Entries(), r.store.Accounts()); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	payRepo repository.PaymentRepository,
	entryRepo repository.AccountTransactionRepository,
	accountRepo repository.CashAccountRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(r.store.Transactions(), r.store.Payments(), r.store.Entries(),
		r.store.Accounts(), r.store.Movements(), r.store.Products())
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func errDuplicate() error { return domain.ErrDuplicate }
