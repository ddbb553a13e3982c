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

var _ repository.CashAccountRepository = (*CashAccountRepo)(nil)

const accountColumns = `id, shop_id, name, type, currency, opening_balance, current_balance, is_default, is_active, sync_status, created_at, updated_at`

// CashAccountRepo implementación sobre PostgreSQL (usable con pool o tx).
type CashAccountRepo struct {
	q Querier
}

// NewCashAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashAccountRepository(q Querier) *CashAccountRepo {
	return &CashAccountRepo{q: q}
}

func scanAccount(row pgx.Row) (*entity.CashAccount, error) {
	var a entity.CashAccount
	err := row.Scan(
		&a.ID, &a.ShopID, &a.Name, &a.Type, &a.Currency,
		&a.OpeningBalance, &a.CurrentBalance, &a.IsDefault, &a.IsActive,
		&a.SyncStatus, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una cuenta nueva.
func (r *CashAccountRepo) Create(account *entity.CashAccount) error {
	query := `
		INSERT INTO cash_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.ShopID, account.Name, account.Type, account.Currency,
		account.OpeningBalance, account.CurrentBalance, account.IsDefault, account.IsActive,
		account.SyncStatus, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cash account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *CashAccountRepo) GetByID(id string) (*entity.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE id = $1`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene una cuenta bloqueando su fila (FOR UPDATE).
// Solo tiene sentido sobre un repositorio atado a una transacción.
func (r *CashAccountRepo) GetForUpdate(id string) (*entity.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE id = $1 FOR UPDATE`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account for update: %w", err)
	}
	return a, nil
}

// UpdateBalance persiste el balance derivado tras un asiento (mismo alcance
// atómico que el asiento).
func (r *CashAccountRepo) UpdateBalance(accountID string, balance decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cash_accounts SET current_balance = $2, sync_status = 'pending', updated_at = $3 WHERE id = $1`,
		accountID, balance, at,
	)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// Update actualiza nombre, tipo, default y activo. No toca los balances.
func (r *CashAccountRepo) Update(account *entity.CashAccount) error {
	query := `
		UPDATE cash_accounts SET name = $2, type = $3, is_default = $4, is_active = $5,
			sync_status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Name, account.Type, account.IsDefault, account.IsActive,
		account.SyncStatus, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cash account: %w", err)
	}
	return nil
}

// List lista cuentas, opcionalmente solo las activas.
func (r *CashAccountRepo) List(onlyActive bool) ([]*entity.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY is_default DESC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cash accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
