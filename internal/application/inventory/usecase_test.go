package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func buildUseCase(t *testing.T) (*inventory.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := inventory.NewLedgerUseCase(memory.NewTxRunner(store), store.Products(), store.Movements())
	return uc, store
}

// seedProduct crea un producto de peso (base gramos) sin stock.
func seedProduct(t *testing.T, store *memory.Store) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:                  uuid.New().String(),
		SKU:                 "ARROZ-001",
		Name:                "Arroz a granel",
		Family:              entity.FamilyWeight,
		BaseUnit:            "g",
		PurchaseUnit:        "kg",
		SellingUnit:         "g",
		CostPricePerBase:    decimal.RequireFromString("3.5"),
		SellingPricePerBase: decimal.RequireFromString("5"),
		LowStockThreshold:   decimal.NewFromInt(500),
		IsActive:            true,
		SyncStatus:          entity.SyncStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, store.Products().Create(p))
	return p
}

func record(t *testing.T, uc *inventory.LedgerUseCase, productID, movType string, qty decimal.Decimal, unit string) *entity.StockMovement {
	t.Helper()
	mov, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		Type:      movType,
		Quantity:  qty,
		Unit:      unit,
	})
	require.NoError(t, err)
	return mov
}

// ─────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaActualizaStockDerivado(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)

	mov := record(t, uc, p.ID, entity.MovementTypeIN, decimal.NewFromInt(2000), "")

	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(2000)))

	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(2000)),
		"stock derivado = %s", got.StockQuantity)
	assert.Equal(t, entity.SyncStatusPending, got.SyncStatus)
}

func TestRecordMovement_ConvierteUnidadDeCompraABase(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)

	// 2 kg entran como 2000 g al ledger
	mov := record(t, uc, p.ID, entity.MovementTypeIN, decimal.NewFromInt(2), "kg")

	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(2000)),
		"cantidad en unidad base = %s", mov.Quantity)

	sum, err := store.Movements().SumSignedByProduct(p.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(2000)))
}

func TestRecordMovement_VentaSinStockSuficienteRechazada(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)
	record(t, uc, p.ID, entity.MovementTypeIN, decimal.NewFromInt(100), "")

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Type:      entity.MovementTypeSALE,
		Quantity:  decimal.NewFromInt(150),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nada quedó escrito: el stock y el ledger no cambian
	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(100)))
	movs, err := store.Movements().ListByProduct(p.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestRecordMovement_VentaExactaDejaStockEnCero(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)
	record(t, uc, p.ID, entity.MovementTypeIN, decimal.NewFromInt(100), "")

	record(t, uc, p.ID, entity.MovementTypeSALE, decimal.NewFromInt(100), "")

	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.IsZero())
	assert.True(t, got.IsOutOfStock())
}

func TestRecordMovement_AjusteNegativoEsDeltaConSigno(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)
	record(t, uc, p.ID, entity.MovementTypeIN, decimal.NewFromInt(1000), "")

	// merma de 200 g
	record(t, uc, p.ID, entity.MovementTypeADJUSTMENT, decimal.NewFromInt(-200), "")

	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(800)))
}

func TestRecordMovement_AjusteCeroInvalido(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Type:      entity.MovementTypeADJUSTMENT,
		Quantity:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_CantidadNegativaEnVentaInvalida(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Type:      entity.MovementTypeSALE,
		Quantity:  decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: uuid.New().String(),
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// El stock derivado siempre es igual a la suma con signo del ledger, sin
// importar la mezcla de tipos de movimiento.
func TestRecordMovement_StockSiempreIgualASumaDelLedger(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)

	record(t, uc, p.ID, entity.MovementTypeIN, decimal.NewFromInt(5000), "")
	record(t, uc, p.ID, entity.MovementTypeSALE, decimal.NewFromInt(1200), "")
	record(t, uc, p.ID, entity.MovementTypeTransferOut, decimal.NewFromInt(300), "")
	record(t, uc, p.ID, entity.MovementTypeTransferIn, decimal.NewFromInt(450), "")
	record(t, uc, p.ID, entity.MovementTypeADJUSTMENT, decimal.NewFromInt(-150), "")

	sum, err := store.Movements().SumSignedByProduct(p.ID)
	require.NoError(t, err)
	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(sum),
		"stock %s != ledger %s", got.StockQuantity, sum)
	assert.True(t, sum.Equal(decimal.NewFromInt(3800)))
}

// ─────────────────────────────────────────────────────────────────────────────
// CurrentStock / LowStock
// ─────────────────────────────────────────────────────────────────────────────

func TestCurrentStock_ClasificaStockBajo(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store) // umbral 500 g
	record(t, uc, p.ID, entity.MovementTypeIN, decimal.NewFromInt(400), "")

	stock, err := uc.CurrentStock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stock.IsLowStock)
	assert.False(t, stock.IsOutOfStock)
	assert.True(t, stock.StockQuantity.Equal(decimal.NewFromInt(400)))
}

func TestCurrentStock_StockCeroEsAgotadoNoBajo(t *testing.T) {
	uc, store := buildUseCase(t)
	p := seedProduct(t, store)

	stock, err := uc.CurrentStock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stock.IsOutOfStock)
	assert.False(t, stock.IsLowStock)
}

func TestLowStock_SoloProductosBajoUmbral(t *testing.T) {
	uc, store := buildUseCase(t)
	bajo := seedProduct(t, store)
	record(t, uc, bajo.ID, entity.MovementTypeIN, decimal.NewFromInt(100), "")

	sano := seedProduct2(t, store, "FRIJOL-001")
	record(t, uc, sano.ID, entity.MovementTypeIN, decimal.NewFromInt(9000), "")

	list, err := uc.LowStock(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bajo.ID, list[0].ProductID)
}

func seedProduct2(t *testing.T, store *memory.Store, sku string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:                  uuid.New().String(),
		SKU:                 sku,
		Name:                sku,
		Family:              entity.FamilyWeight,
		BaseUnit:            "g",
		SellingUnit:         "g",
		SellingPricePerBase: decimal.NewFromInt(4),
		LowStockThreshold:   decimal.NewFromInt(500),
		IsActive:            true,
		SyncStatus:          entity.SyncStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, store.Products().Create(p))
	return p
}
