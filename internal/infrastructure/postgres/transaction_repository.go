package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, shop_id, type, transaction_number, subtotal, tax_amount, discount_amount, total_amount, amount_paid, balance_due, payment_status, transaction_date, due_date, contact_id, expense_category_id, notes, sync_status, created_at, created_by, updated_at`

// TransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var contact, category, notes, createdBy *string
	err := row.Scan(
		&t.ID, &t.ShopID, &t.Type, &t.TransactionNumber,
		&t.Subtotal, &t.TaxAmount, &t.DiscountAmount, &t.TotalAmount,
		&t.AmountPaid, &t.BalanceDue, &t.PaymentStatus,
		&t.TransactionDate, &t.DueDate, &contact, &category, &notes,
		&t.SyncStatus, &t.CreatedAt, &createdBy, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.ContactID = deref(contact)
	t.ExpenseCategoryID = deref(category)
	t.Notes = deref(notes)
	t.CreatedBy = deref(createdBy)
	return &t, nil
}

// Create persiste una cabecera de transacción.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ShopID, tx.Type, tx.TransactionNumber,
		tx.Subtotal, tx.TaxAmount, tx.DiscountAmount, tx.TotalAmount,
		tx.AmountPaid, tx.BalanceDue, tx.PaymentStatus,
		tx.TransactionDate, tx.DueDate, nullable(tx.ContactID), nullable(tx.ExpenseCategoryID),
		nullable(tx.Notes), tx.SyncStatus, tx.CreatedAt, nullable(tx.CreatedBy), tx.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// GetByNumber obtiene una transacción por su número único.
func (r *TransactionRepo) GetByNumber(number string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_number = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by number: %w", err)
	}
	return t, nil
}

// UpdatePaymentProgress actualiza SOLO los campos derivados de cobros.
// La cabecera de negocio es inmutable.
func (r *TransactionRepo) UpdatePaymentProgress(id string, amountPaid, balanceDue decimal.Decimal, status string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE transactions SET amount_paid = $2, balance_due = $3, payment_status = $4, sync_status = 'pending', updated_at = $5 WHERE id = $1`,
		id, amountPaid, balanceDue, status, at,
	)
	if err != nil {
		return fmt.Errorf("update payment progress: %w", err)
	}
	return nil
}

// List lista transacciones con filtros opcionales (tipo, cuenta, fechas).
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + prefixColumns("t.", transactionColumns) + ` FROM transactions t`
	var args []any
	pos := 1
	where := ""
	and := func(cond string, val any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, pos)
		args = append(args, val)
		pos++
	}
	if filter.CashAccountID != "" {
		query += ` JOIN payments p ON p.transaction_id = t.id`
		and("p.cash_account_id = $%d", filter.CashAccountID)
	}
	if filter.Type != "" {
		and("t.type = $%d", filter.Type)
	}
	if filter.From != nil {
		and("t.transaction_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		and("t.transaction_date <= $%d", *filter.To)
	}
	query += where
	if filter.CashAccountID != "" {
		query += ` GROUP BY t.id`
	}
	query += fmt.Sprintf(" ORDER BY t.transaction_date DESC, t.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
