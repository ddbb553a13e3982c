package cashaccount_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/cashaccount"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func buildUseCase(t *testing.T) (*cashaccount.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := cashaccount.NewLedgerUseCase(memory.NewTxRunner(store), store.Accounts(), store.Entries())
	return uc, store
}

func seedAccount(t *testing.T, uc *cashaccount.LedgerUseCase, opening int64) *entity.CashAccount {
	t.Helper()
	account, err := uc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Name:           "Caja principal",
		Type:           entity.AccountTypeCash,
		Currency:       "COP",
		OpeningBalance: decimal.NewFromInt(opening),
	})
	require.NoError(t, err)
	return account
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateAccount
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateAccount_BalanceActualArrancaEnApertura(t *testing.T) {
	uc, _ := buildUseCase(t)

	account := seedAccount(t, uc, 50000)

	assert.True(t, account.CurrentBalance.Equal(decimal.NewFromInt(50000)))
	assert.True(t, account.IsActive)
	assert.Equal(t, entity.SyncStatusPending, account.SyncStatus)
}

func TestCreateAccount_TipoInvalidoRechazado(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Name:     "Caja",
		Type:     "cripto",
		Currency: "COP",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// PostEntry
// ─────────────────────────────────────────────────────────────────────────────

func TestPostEntry_DepositoCapturaBalancesAntesYDespues(t *testing.T) {
	uc, store := buildUseCase(t)
	account := seedAccount(t, uc, 10000)

	entry, err := uc.PostEntry(context.Background(), account.ID,
		decimal.NewFromInt(2500), entity.EntryTypeDeposit, cashaccount.EntryRef{})
	require.NoError(t, err)

	assert.True(t, entry.BalanceBefore.Equal(decimal.NewFromInt(10000)))
	assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(12500)))

	got, err := store.Accounts().GetByID(account.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(12500)))
}

func TestPostEntry_RetiroPuedeDejarBalanceNegativo(t *testing.T) {
	uc, store := buildUseCase(t)
	account := seedAccount(t, uc, 1000)

	// gasto mayor al balance: permitido, el ledger solo registra
	entry, err := uc.PostEntry(context.Background(), account.ID,
		decimal.NewFromInt(1500), entity.EntryTypeWithdrawal, cashaccount.EntryRef{})
	require.NoError(t, err)

	assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(-500)))
	got, err := store.Accounts().GetByID(account.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsNegative())
}

func TestPostEntry_MontoNoPositivoRechazado(t *testing.T) {
	uc, _ := buildUseCase(t)
	account := seedAccount(t, uc, 1000)

	_, err := uc.PostEntry(context.Background(), account.ID,
		decimal.Zero, entity.EntryTypeDeposit, cashaccount.EntryRef{})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.PostEntry(context.Background(), account.ID,
		decimal.NewFromInt(-10), entity.EntryTypeDeposit, cashaccount.EntryRef{})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestPostEntry_CuentaInexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.PostEntry(context.Background(), "no-existe",
		decimal.NewFromInt(100), entity.EntryTypeDeposit, cashaccount.EntryRef{})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

// El balance derivado siempre reproduce apertura + Σ montos con signo.
func TestPostEntry_BalanceIgualAperturaMasSumaDelLedger(t *testing.T) {
	uc, store := buildUseCase(t)
	account := seedAccount(t, uc, 20000)
	ctx := context.Background()

	amounts := []struct {
		amount    int64
		entryType string
	}{
		{5000, entity.EntryTypeDeposit},
		{3000, entity.EntryTypeWithdrawal},
		{1200, entity.EntryTypeTransferIn},
		{700, entity.EntryTypeTransferOut},
	}
	for _, a := range amounts {
		_, err := uc.PostEntry(ctx, account.ID, decimal.NewFromInt(a.amount), a.entryType, cashaccount.EntryRef{})
		require.NoError(t, err)
	}

	sum, err := store.Entries().SumSignedByAccount(account.ID)
	require.NoError(t, err)
	got, err := store.Accounts().GetByID(account.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(account.OpeningBalance.Add(sum)),
		"balance %s != apertura %s + ledger %s", got.CurrentBalance, account.OpeningBalance, sum)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(22500)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Deactivate / Ledger
// ─────────────────────────────────────────────────────────────────────────────

func TestDeactivate_NoBorraNiElLedger(t *testing.T) {
	uc, _ := buildUseCase(t)
	account := seedAccount(t, uc, 1000)
	ctx := context.Background()

	_, err := uc.PostEntry(ctx, account.ID, decimal.NewFromInt(500), entity.EntryTypeDeposit, cashaccount.EntryRef{})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, account.ID))

	got, err := uc.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	entries, err := uc.Ledger(ctx, account.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListAccounts_SoloActivasFiltra(t *testing.T) {
	uc, _ := buildUseCase(t)
	ctx := context.Background()
	activa := seedAccount(t, uc, 0)
	inactiva, err := uc.CreateAccount(ctx, dto.CreateAccountRequest{
		Name: "Nequi", Type: entity.AccountTypeMobileMoney, Currency: "COP",
	})
	require.NoError(t, err)
	require.NoError(t, uc.Deactivate(ctx, inactiva.ID))

	activas, err := uc.ListAccounts(ctx, true)
	require.NoError(t, err)
	require.Len(t, activas, 1)
	assert.Equal(t, activa.ID, activas[0].ID)

	todas, err := uc.ListAccounts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}
