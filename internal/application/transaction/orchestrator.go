package transaction

import (
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Orchestrator traduce un evento de negocio (venta, compra, gasto, ingreso,
// transferencia) en un conjunto consistente de registros
// Transaction/Payment/AccountTransaction/StockMovement dentro de un solo
// alcance atómico: balances, stock y pista de auditoría nunca divergen,
// incluso ante fallo parcial (rollback completo).
type Orchestrator struct {
	txRunner    TxRunner
	inventoryUC *inventory.LedgerUseCase
	productRepo repository.ProductRepository
	accountRepo repository.CashAccountRepository
	txRepo      repository.TransactionRepository
	payRepo     repository.PaymentRepository
	entryRepo   repository.AccountTransactionRepository
}

// NewOrchestrator construye el orquestador. Los repositorios recibidos van
// atados al pool (solo lecturas de validación y consultas); las escrituras
// siempre pasan por el TxRunner.
func NewOrchestrator(
	txRunner TxRunner,
	inventoryUC *inventory.LedgerUseCase,
	productRepo repository.ProductRepository,
	accountRepo repository.CashAccountRepository,
	txRepo repository.TransactionRepository,
	payRepo repository.PaymentRepository,
	entryRepo repository.AccountTransactionRepository,
) *Orchestrator {
	return &Orchestrator{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		productRepo: productRepo,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		payRepo:     payRepo,
		entryRepo:   entryRepo,
	}
}

// Prefijos del número de transacción por tipo.
var numberPrefixes = map[string]string{
	entity.TransactionTypeSale:     "SAL",
	entity.TransactionTypePurchase: "PUR",
	entity.TransactionTypeExpense:  "EXP",
	entity.TransactionTypeIncome:   "INC",
	entity.TransactionTypeTransfer: "TRF",
}

// numberFor genera un número único legible: PREFIJO-FECHA-sufijo de
// nanosegundos. La unicidad la respalda el índice único de la tabla.
func numberFor(txType string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%06d", numberPrefixes[txType], now.Format("20060102"), now.UnixNano()%1000000)
}

// entryTypeFor devuelve el tipo de asiento de un pago según el tipo de
// transacción: la plata entra en ventas/ingresos y sale en compras/gastos.
func entryTypeFor(txType string) string {
	switch txType {
	case entity.TransactionTypeSale, entity.TransactionTypeIncome:
		return entity.EntryTypeDeposit
	default:
		return entity.EntryTypeWithdrawal
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		TransactionID:   p.TransactionID,
		CashAccountID:   p.CashAccountID,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		PaymentDate:     p.PaymentDate,
	}
}

func toResponse(tx *entity.Transaction, payments []*entity.Payment) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:                tx.ID,
		Type:              tx.Type,
		TransactionNumber: tx.TransactionNumber,
		Subtotal:          tx.Subtotal,
		TaxAmount:         tx.TaxAmount,
		DiscountAmount:    tx.DiscountAmount,
		TotalAmount:       tx.TotalAmount,
		AmountPaid:        tx.AmountPaid,
		BalanceDue:        tx.BalanceDue,
		PaymentStatus:     tx.PaymentStatus,
		TransactionDate:   tx.TransactionDate,
		DueDate:           tx.DueDate,
		ContactID:         tx.ContactID,
		ExpenseCategoryID: tx.ExpenseCategoryID,
		Notes:             tx.Notes,
		Payments:          make([]dto.PaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp
}
