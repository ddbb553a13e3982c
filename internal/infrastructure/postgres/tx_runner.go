package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tienda-api/internal/application/cashaccount"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/transaction"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Ensure TxRunner implements the transaction ports of each use case.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ cashaccount.TxRunner = (*TxRunner)(nil)
var _ transaction.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del ledger de inventario y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrAtomicWriteFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrAtomicWriteFailed, err)
	}
	return nil
}

// RunAccounts inicia una transacción con los repos del ledger de cuentas.
func (r *TxRunner) RunAccounts(ctx context.Context, fn func(
	entryRepo repository.AccountTransactionRepository,
	accountRepo repository.CashAccountRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrAtomicWriteFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entryRepo := NewAccountTransactionRepository(tx)
	accountRepo := NewCashAccountRepository(tx)

	if err := fn(entryRepo, accountRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrAtomicWriteFailed, err)
	}
	return nil
}

// RunLedger inicia una transacción con todos los repos que un evento de
// negocio puede tocar (cabecera, pagos, ambos ledgers y productos).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	payRepo repository.PaymentRepository,
	entryRepo repository.AccountTransactionRepository,
	accountRepo repository.CashAccountRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrAtomicWriteFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewTransactionRepository(tx)
	payRepo := NewPaymentRepository(tx)
	entryRepo := NewAccountTransactionRepository(tx)
	accountRepo := NewCashAccountRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(txRepo, payRepo, entryRepo, accountRepo, movRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrAtomicWriteFailed, err)
	}
	return nil
}
