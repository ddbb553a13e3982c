package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, transaction_id, cash_account_id, amount, payment_method, reference_number, payment_date, sync_status, created_at, created_by`

// PaymentRepo implementación sobre PostgreSQL (usable con pool o tx).
// Append-only: los pagos no se editan ni se borran.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var refNumber, createdBy *string
	err := row.Scan(
		&p.ID, &p.TransactionID, &p.CashAccountID, &p.Amount, &p.PaymentMethod,
		&refNumber, &p.PaymentDate, &p.SyncStatus, &p.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	p.ReferenceNumber = deref(refNumber)
	p.CreatedBy = deref(createdBy)
	return &p, nil
}

// Create persiste un pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.TransactionID, payment.CashAccountID, payment.Amount,
		payment.PaymentMethod, nullable(payment.ReferenceNumber), payment.PaymentDate,
		payment.SyncStatus, payment.CreatedAt, nullable(payment.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// ListByTransaction lista los pagos de una transacción.
func (r *PaymentRepo) ListByTransaction(transactionID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
