package cashaccount

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/money"
)

// LedgerUseCase mantiene el ledger de cuentas de efectivo: cada asiento
// lleva balance antes/después y el balance derivado de la cuenta se
// persiste en el mismo alcance atómico que el asiento.
type LedgerUseCase struct {
	txRunner    TxRunner
	accountRepo repository.CashAccountRepository
	entryRepo   repository.AccountTransactionRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	accountRepo repository.CashAccountRepository,
	entryRepo repository.AccountTransactionRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, accountRepo: accountRepo, entryRepo: entryRepo}
}

// EntryRef referencias opcionales del asiento a su transacción/pago origen.
type EntryRef struct {
	TransactionID string
	PaymentID     string
	Description   string
	UserID        string
}

// CreateAccount crea una cuenta; el balance actual arranca igual al de
// apertura (el ledger parte vacío).
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, in dto.CreateAccountRequest) (*entity.CashAccount, error) {
	if in.Name == "" || !entity.ValidAccountType(in.Type) || in.Currency == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	account := &entity.CashAccount{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Type:           in.Type,
		Currency:       in.Currency,
		OpeningBalance: in.OpeningBalance,
		CurrentBalance: in.OpeningBalance,
		IsDefault:      in.IsDefault,
		IsActive:       true,
		SyncStatus:     entity.SyncStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

// PostEntry registra un asiento: bloquea la cuenta, calcula
// balanceAfter = balance ± monto según el tipo, agrega la fila del ledger
// y persiste el balance derivado, todo en la misma transacción. El monto
// debe ser estrictamente positivo. El balance puede quedar negativo
// (gastos de caja informal): no es condición de error.
func (uc *LedgerUseCase) PostEntry(ctx context.Context, accountID string, amount decimal.Decimal, entryType string, ref EntryRef) (*entity.AccountTransaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !entity.ValidEntryType(entryType) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var entry *entity.AccountTransaction
	err := uc.txRunner.RunAccounts(ctx, func(
		entryRepo repository.AccountTransactionRepository,
		accountRepo repository.CashAccountRepository,
	) error {
		var err error
		entry, err = PostEntryInTx(entryRepo, accountRepo, accountID, amount, entryType, ref, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PostEntryInTx registra un asiento usando los repositorios del caller
// (misma transacción). Lo usa PostEntry y el orquestador de transacciones.
func PostEntryInTx(
	entryRepo repository.AccountTransactionRepository,
	accountRepo repository.CashAccountRepository,
	accountID string,
	amount decimal.Decimal,
	entryType string,
	ref EntryRef,
	now time.Time,
) (*entity.AccountTransaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	// Bloquea la fila de la cuenta (SELECT FOR UPDATE)
	account, err := accountRepo.GetForUpdate(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	before := account.CurrentBalance
	var after decimal.Decimal
	if entity.EntryCredits(entryType) {
		after = before.Add(amount)
	} else {
		after = before.Sub(amount)
	}

	description := ref.Description
	if description == "" {
		description = money.Describe(entryType, amount, account.Currency)
	}
	entry := &entity.AccountTransaction{
		ID:            uuid.New().String(),
		CashAccountID: accountID,
		TransactionID: ref.TransactionID,
		PaymentID:     ref.PaymentID,
		Type:          entryType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
		EntryDate:     now,
		SyncStatus:    entity.SyncStatusPending,
		CreatedAt:     now,
		CreatedBy:     ref.UserID,
	}
	if err := entryRepo.Create(entry); err != nil {
		return nil, err
	}
	// Persiste el mismo valor en current_balance (mismo alcance atómico)
	if err := accountRepo.UpdateBalance(accountID, after, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetAccount devuelve la cuenta con su balance actual.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, id string) (*entity.CashAccount, error) {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// ListAccounts lista cuentas (activas o todas).
func (uc *LedgerUseCase) ListAccounts(ctx context.Context, onlyActive bool) ([]*entity.CashAccount, error) {
	return uc.accountRepo.List(onlyActive)
}

// Deactivate desactiva una cuenta (no borra: el ledger es histórico).
func (uc *LedgerUseCase) Deactivate(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}
	account.IsActive = false
	account.SyncStatus = entity.SyncStatusPending
	account.UpdatedAt = time.Now()
	return uc.accountRepo.Update(account)
}

// Ledger devuelve los asientos de una cuenta en un rango de fechas.
func (uc *LedgerUseCase) Ledger(ctx context.Context, accountID string, from, to *time.Time, limit, offset int) ([]*entity.AccountTransaction, error) {
	if accountID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.entryRepo.ListByAccount(accountID, from, to, limit, offset)
}
