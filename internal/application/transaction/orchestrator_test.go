package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/transaction"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

const (
	testShopID = "main"
	testUserID = "user-1"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func buildOrchestrator(t *testing.T) (*transaction.Orchestrator, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	inventoryUC := inventory.NewLedgerUseCase(runner, store.Products(), store.Movements())
	orch := transaction.NewOrchestrator(runner, inventoryUC,
		store.Products(), store.Accounts(), store.Transactions(),
		store.Payments(), store.Entries())
	return orch, store
}

func seedAccount(t *testing.T, store *memory.Store, name, currency string, balance int64) *entity.CashAccount {
	t.Helper()
	now := time.Now()
	account := &entity.CashAccount{
		ID:             uuid.New().String(),
		Name:           name,
		Type:           entity.AccountTypeCash,
		Currency:       currency,
		OpeningBalance: decimal.NewFromInt(balance),
		CurrentBalance: decimal.NewFromInt(balance),
		IsActive:       true,
		SyncStatus:     entity.SyncStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, store.Accounts().Create(account))
	return account
}

// seedProduct producto por pieza con stock inicial ya en el ledger.
func seedProduct(t *testing.T, store *memory.Store, sku string, stock int64, price int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:                  uuid.New().String(),
		SKU:                 sku,
		Name:                sku,
		Family:              entity.FamilyPiece,
		BaseUnit:            "unit",
		SellingUnit:         "unit",
		CostPricePerBase:    decimal.NewFromInt(price / 2),
		SellingPricePerBase: decimal.NewFromInt(price),
		StockQuantity:       decimal.NewFromInt(stock),
		IsActive:            true,
		SyncStatus:          entity.SyncStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, store.Products().Create(p))
	if stock > 0 {
		require.NoError(t, store.Movements().Create(&entity.StockMovement{
			ProductID:    p.ID,
			Type:         entity.MovementTypeIN,
			Quantity:     decimal.NewFromInt(stock),
			MovementDate: now,
			SyncStatus:   entity.SyncStatusPending,
			CreatedAt:    now,
		}))
	}
	return p
}

func listAllFilter() repository.TransactionFilter {
	return repository.TransactionFilter{Limit: 100}
}

func balanceOf(t *testing.T, store *memory.Store, accountID string) decimal.Decimal {
	t.Helper()
	account, err := store.Accounts().GetByID(accountID)
	require.NoError(t, err)
	return account.CurrentBalance
}

// ─────────────────────────────────────────────────────────────────────────────
// Ventas
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_VentaPagadaCompleta(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 10000)
	p := seedProduct(t, store, "GASEOSA-001", 20, 3000)

	resp, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale,
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(3000)},
		},
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(6000), PaymentMethod: entity.PaymentMethodCash},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(6000)))
	assert.True(t, resp.BalanceDue.IsZero())
	require.Len(t, resp.Payments, 1)

	// la plata entró a la caja
	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(16000)))

	// el stock bajó vía ledger
	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(18)))

	movs, err := store.Movements().ListByReference(resp.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSALE, movs[0].Type)

	entries, err := store.Entries().ListByTransaction(resp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.EntryTypeDeposit, entries[0].Type)
}

func TestCreateTransaction_VentaACreditoSinPagos(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	p := seedProduct(t, store, "ACEITE-001", 10, 10000)

	resp, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:      entity.TransactionTypeSale,
		ContactID: "cliente-1",
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10000)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusDue, resp.PaymentStatus)
	assert.True(t, resp.AmountPaid.IsZero())
	assert.True(t, resp.BalanceDue.Equal(decimal.NewFromInt(10000)))
	assert.Empty(t, resp.Payments)

	// a crédito: el inventario se mueve, las cuentas no
	movs, err := store.Movements().ListByReference(resp.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
	entries, err := store.Entries().ListByTransaction(resp.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateTransaction_VentaACreditoSinContraparteRechazada(t *testing.T) {
	orch, store := buildOrchestrator(t)
	p := seedProduct(t, store, "SAL-001", 10, 2000)

	_, err := orch.CreateTransactionWithPayments(context.Background(), testShopID, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale,
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2000)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCounterparty)
}

// Un fallo en cualquier línea revierte TODO: ni cabecera, ni pagos, ni
// asientos, ni movimientos quedan escritos.
func TestCreateTransaction_StockInsuficienteRevierteTodo(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 5000)
	ok := seedProduct(t, store, "PAN-001", 50, 500)
	escaso := seedProduct(t, store, "QUESO-001", 1, 8000)

	_, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale,
		Items: []dto.LineItemRequest{
			{ProductID: ok.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(500)},
			{ProductID: escaso.ID, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(8000)},
		},
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(5000), PaymentMethod: entity.PaymentMethodCash},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// ninguna fila sobrevivió el rollback
	gotOK, err := store.Products().GetByID(ok.ID)
	require.NoError(t, err)
	assert.True(t, gotOK.StockQuantity.Equal(decimal.NewFromInt(50)),
		"el stock de la primera línea también se revierte")
	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(5000)))

	txs, err := store.Transactions().List(listAllFilter())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCreateTransaction_PagoMayorAlTotalRechazado(t *testing.T) {
	orch, store := buildOrchestrator(t)
	caja := seedAccount(t, store, "Caja", "COP", 0)
	p := seedProduct(t, store, "CAFE-001", 10, 12000)

	_, err := orch.CreateTransactionWithPayments(context.Background(), testShopID, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale,
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(12000)},
		},
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(15000), PaymentMethod: entity.PaymentMethodCash},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Compras, gastos e ingresos
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_CompraEntraInventarioYSaleDinero(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	banco := seedAccount(t, store, "Banco", "COP", 100000)
	p := seedProduct(t, store, "HARINA-001", 0, 4000)

	resp, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:      entity.TransactionTypePurchase,
		ContactID: "proveedor-1",
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(30), UnitPrice: decimal.NewFromInt(2000)},
		},
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: banco.ID, Amount: decimal.NewFromInt(60000), PaymentMethod: entity.PaymentMethodTransfer},
		},
	})
	require.NoError(t, err)

	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(30)))

	assert.True(t, balanceOf(t, store, banco.ID).Equal(decimal.NewFromInt(40000)))

	entries, err := store.Entries().ListByTransaction(resp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.EntryTypeWithdrawal, entries[0].Type)
}

func TestCreateTransaction_GastoNoTocaInventario(t *testing.T) {
	orch, store := buildOrchestrator(t)
	caja := seedAccount(t, store, "Caja", "COP", 50000)

	resp, err := orch.CreateTransactionWithPayments(context.Background(), testShopID, testUserID, dto.CreateTransactionRequest{
		Type:              entity.TransactionTypeExpense,
		Amount:            decimal.NewFromInt(20000),
		ExpenseCategoryID: "arriendo",
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(20000), PaymentMethod: entity.PaymentMethodCash},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(30000)))

	movs, err := store.Movements().ListByReference(resp.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCreateTransaction_PagoDivididoEntreDosCuentas(t *testing.T) {
	orch, store := buildOrchestrator(t)
	caja := seedAccount(t, store, "Caja", "COP", 0)
	nequi := seedAccount(t, store, "Nequi", "COP", 0)
	p := seedProduct(t, store, "AZUCAR-001", 10, 5000)

	resp, err := orch.CreateTransactionWithPayments(context.Background(), testShopID, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale,
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(5000)},
		},
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(6000), PaymentMethod: entity.PaymentMethodCash},
			{CashAccountID: nequi.ID, Amount: decimal.NewFromInt(4000), PaymentMethod: entity.PaymentMethodMobile},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	require.Len(t, resp.Payments, 2)
	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(6000)))
	assert.True(t, balanceOf(t, store, nequi.ID).Equal(decimal.NewFromInt(4000)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Transferencias
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordTransfer_ConservaElDineroTotal(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 5000)
	banco := seedAccount(t, store, "Banco", "COP", 1000)

	resp, err := orch.RecordTransfer(ctx, testShopID, testUserID, dto.TransferRequest{
		SourceAccountID:      caja.ID,
		DestinationAccountID: banco.ID,
		Amount:               decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeTransfer, resp.Type)
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)

	// 5000+1000 antes == 3000+3000 después
	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(3000)))
	assert.True(t, balanceOf(t, store, banco.ID).Equal(decimal.NewFromInt(3000)))

	// exactamente dos pagos y dos asientos con direcciones opuestas
	require.Len(t, resp.Payments, 2)
	entries, err := store.Entries().ListByTransaction(resp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	types := map[string]bool{}
	for _, e := range entries {
		types[e.Type] = true
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(2000)))
	}
	assert.True(t, types[entity.EntryTypeTransferOut])
	assert.True(t, types[entity.EntryTypeTransferIn])
}

func TestRecordTransfer_MismaCuentaRechazada(t *testing.T) {
	orch, store := buildOrchestrator(t)
	caja := seedAccount(t, store, "Caja", "COP", 5000)

	_, err := orch.RecordTransfer(context.Background(), testShopID, testUserID, dto.TransferRequest{
		SourceAccountID:      caja.ID,
		DestinationAccountID: caja.ID,
		Amount:               decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrSameAccountTransfer)
}

func TestRecordTransfer_MonedasDistintasRechazada(t *testing.T) {
	orch, store := buildOrchestrator(t)
	cop := seedAccount(t, store, "Caja", "COP", 5000)
	usd := seedAccount(t, store, "Dólares", "USD", 100)

	_, err := orch.RecordTransfer(context.Background(), testShopID, testUserID, dto.TransferRequest{
		SourceAccountID:      cop.ID,
		DestinationAccountID: usd.ID,
		Amount:               decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestRecordTransfer_PuedeDejarOrigenNegativo(t *testing.T) {
	orch, store := buildOrchestrator(t)
	caja := seedAccount(t, store, "Caja", "COP", 500)
	banco := seedAccount(t, store, "Banco", "COP", 0)

	_, err := orch.RecordTransfer(context.Background(), testShopID, testUserID, dto.TransferRequest{
		SourceAccountID:      caja.ID,
		DestinationAccountID: banco.ID,
		Amount:               decimal.NewFromInt(800),
	})
	require.NoError(t, err)

	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(-300)))
	assert.True(t, balanceOf(t, store, banco.ID).Equal(decimal.NewFromInt(800)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Abonos
// ─────────────────────────────────────────────────────────────────────────────

func TestCollectPayment_AbonoParcialYLuegoSaldo(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 0)
	p := seedProduct(t, store, "LECHE-001", 10, 10000)

	venta, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:      entity.TransactionTypeSale,
		ContactID: "cliente-1",
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10000)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, entity.PaymentStatusDue, venta.PaymentStatus)

	parcial, err := orch.CollectPayment(ctx, venta.ID, testUserID, dto.CollectPaymentRequest{
		CashAccountID: caja.ID,
		Amount:        decimal.NewFromInt(4000),
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, parcial.PaymentStatus)
	assert.True(t, parcial.BalanceDue.Equal(decimal.NewFromInt(6000)))
	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(4000)))

	saldado, err := orch.CollectPayment(ctx, venta.ID, testUserID, dto.CollectPaymentRequest{
		CashAccountID: caja.ID,
		Amount:        decimal.NewFromInt(6000),
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, saldado.PaymentStatus)
	assert.True(t, saldado.BalanceDue.IsZero())
	assert.Len(t, saldado.Payments, 2)
	assert.True(t, balanceOf(t, store, caja.ID).Equal(decimal.NewFromInt(10000)))
}

func TestCollectPayment_SobrePagoRechazado(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 0)
	p := seedProduct(t, store, "HUEVOS-001", 10, 500)

	venta, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:      entity.TransactionTypeSale,
		ContactID: "cliente-1",
		Items: []dto.LineItemRequest{
			{ProductID: p.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(500)},
		},
	})
	require.NoError(t, err)

	_, err = orch.CollectPayment(ctx, venta.ID, testUserID, dto.CollectPaymentRequest{
		CashAccountID: caja.ID,
		Amount:        decimal.NewFromInt(6000), // total 5000
		PaymentMethod: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCollectPayment_TransaccionYaPagadaRechazada(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 0)

	gasto, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:   entity.TransactionTypeExpense,
		Amount: decimal.NewFromInt(1000),
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(1000), PaymentMethod: entity.PaymentMethodCash},
		},
	})
	require.NoError(t, err)

	_, err = orch.CollectPayment(ctx, gasto.ID, testUserID, dto.CollectPaymentRequest{
		CashAccountID: caja.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Consultas
// ─────────────────────────────────────────────────────────────────────────────

func TestHistory_FiltraPorCuentaAfectada(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 50000)
	banco := seedAccount(t, store, "Banco", "COP", 50000)

	gastoCaja, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:   entity.TransactionTypeExpense,
		Amount: decimal.NewFromInt(1000),
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(1000), PaymentMethod: entity.PaymentMethodCash},
		},
	})
	require.NoError(t, err)
	_, err = orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:   entity.TransactionTypeExpense,
		Amount: decimal.NewFromInt(2000),
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: banco.ID, Amount: decimal.NewFromInt(2000), PaymentMethod: entity.PaymentMethodTransfer},
		},
	})
	require.NoError(t, err)

	list, err := orch.History(ctx, repository.TransactionFilter{CashAccountID: caja.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, gastoCaja.ID, list[0].ID)
}

func TestGetTransaction_IncluyePagos(t *testing.T) {
	orch, store := buildOrchestrator(t)
	ctx := context.Background()
	caja := seedAccount(t, store, "Caja", "COP", 0)

	ingreso, err := orch.CreateTransactionWithPayments(ctx, testShopID, testUserID, dto.CreateTransactionRequest{
		Type:   entity.TransactionTypeIncome,
		Amount: decimal.NewFromInt(7000),
		Payments: []dto.PaymentSplitRequest{
			{CashAccountID: caja.ID, Amount: decimal.NewFromInt(7000), PaymentMethod: entity.PaymentMethodCash},
		},
	})
	require.NoError(t, err)

	got, err := orch.GetTransaction(ctx, ingreso.ID)
	require.NoError(t, err)
	assert.Equal(t, ingreso.TransactionNumber, got.TransactionNumber)
	require.Len(t, got.Payments, 1)
	assert.True(t, got.Payments[0].Amount.Equal(decimal.NewFromInt(7000)))
}

func TestCollectPayment_TransaccionInexistente(t *testing.T) {
	orch, store := buildOrchestrator(t)
	caja := seedAccount(t, store, "Caja", "COP", 0)

	_, err := orch.CollectPayment(context.Background(), uuid.New().String(), testUserID, dto.CollectPaymentRequest{
		CashAccountID: caja.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
