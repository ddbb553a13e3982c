package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.AccountTransactionRepository = (*AccountTransactionRepo)(nil)

const entryColumns = `id, cash_account_id, transaction_id, payment_id, type, amount, balance_before, balance_after, description, entry_date, sync_status, created_at, created_by`

// AccountTransactionRepo implementación del ledger de cuentas sobre PostgreSQL
// (usable con pool o tx). Append-only: no hay Update ni Delete.
type AccountTransactionRepo struct {
	q Querier
}

// NewAccountTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountTransactionRepository(q Querier) *AccountTransactionRepo {
	return &AccountTransactionRepo{q: q}
}

func scanEntry(row pgx.Row) (*entity.AccountTransaction, error) {
	var e entity.AccountTransaction
	var txID, payID, desc, createdBy *string
	err := row.Scan(
		&e.ID, &e.CashAccountID, &txID, &payID, &e.Type, &e.Amount,
		&e.BalanceBefore, &e.BalanceAfter, &desc, &e.EntryDate,
		&e.SyncStatus, &e.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	e.TransactionID = deref(txID)
	e.PaymentID = deref(payID)
	e.Description = deref(desc)
	e.CreatedBy = deref(createdBy)
	return &e, nil
}

// Create persiste un asiento del ledger de cuentas.
func (r *AccountTransactionRepo) Create(entry *entity.AccountTransaction) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO account_transactions (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CashAccountID, nullable(entry.TransactionID), nullable(entry.PaymentID),
		entry.Type, entry.Amount, entry.BalanceBefore, entry.BalanceAfter,
		nullable(entry.Description), entry.EntryDate, entry.SyncStatus,
		entry.CreatedAt, nullable(entry.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create account transaction: %w", err)
	}
	return nil
}

// SumSignedByAccount devuelve la suma con signo del ledger de la cuenta:
// deposit/transfer_in suman, withdrawal/transfer_out restan.
func (r *AccountTransactionRepo) SumSignedByAccount(accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE
			WHEN type IN ('deposit', 'transfer_in') THEN amount
			ELSE -amount
		END), 0)
		FROM account_transactions WHERE cash_account_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum account entries: %w", err)
	}
	return sum, nil
}

// ListByAccount lista asientos de una cuenta en un rango de fechas.
func (r *AccountTransactionRepo) ListByAccount(accountID string, from, to *time.Time, limit, offset int) ([]*entity.AccountTransaction, error) {
	query := `SELECT ` + entryColumns + ` FROM account_transactions WHERE cash_account_id = $1`
	args := []any{accountID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND entry_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list account entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountTransaction
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListByTransaction lista los asientos originados por una transacción.
func (r *AccountTransactionRepo) ListByTransaction(transactionID string) ([]*entity.AccountTransaction, error) {
	query := `SELECT ` + entryColumns + ` FROM account_transactions WHERE transaction_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list entries by transaction: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountTransaction
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
