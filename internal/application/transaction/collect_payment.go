package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/cashaccount"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// CollectPayment registra un abono posterior sobre una transacción a
// crédito (partial o due): agrega un par Payment + AccountTransaction sin
// tocar los campos de negocio de la cabecera; solo los derivados de cobro
// (amount_paid, balance_due, payment_status) se recalculan y persisten.
func (o *Orchestrator) CollectPayment(ctx context.Context, transactionID, userID string, in dto.CollectPaymentRequest) (*dto.TransactionResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	header, err := o.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	if header.Type == entity.TransactionTypeTransfer || header.PaymentStatus == entity.PaymentStatusPaid {
		return nil, domain.ErrInvalidInput
	}
	newPaid := header.AmountPaid.Add(in.Amount)
	if newPaid.GreaterThan(header.TotalAmount) {
		// no se acepta cobrar más que el saldo pendiente
		return nil, domain.ErrInvalidAmount
	}
	account, err := o.accountRepo.GetByID(in.CashAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, domain.ErrAccountNotFound
	}

	now := time.Now()
	newDue := header.TotalAmount.Sub(newPaid)
	newStatus := entity.PaymentStatusFor(header.TotalAmount, newPaid)
	payment := &entity.Payment{
		ID:              uuid.New().String(),
		TransactionID:   header.ID,
		CashAccountID:   in.CashAccountID,
		Amount:          in.Amount,
		PaymentMethod:   in.PaymentMethod,
		ReferenceNumber: in.ReferenceNumber,
		PaymentDate:     now,
		SyncStatus:      entity.SyncStatusPending,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	err = o.txRunner.RunLedger(ctx, func(
		txRepo repository.TransactionRepository,
		payRepo repository.PaymentRepository,
		entryRepo repository.AccountTransactionRepository,
		accountRepo repository.CashAccountRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		if err := payRepo.Create(payment); err != nil {
			return err
		}
		if _, err := cashaccount.PostEntryInTx(entryRepo, accountRepo,
			in.CashAccountID, in.Amount, entryTypeFor(header.Type),
			cashaccount.EntryRef{
				TransactionID: header.ID,
				PaymentID:     payment.ID,
				Description:   "abono " + header.TransactionNumber,
				UserID:        userID,
			}, now); err != nil {
			return err
		}
		return txRepo.UpdatePaymentProgress(header.ID, newPaid, newDue, newStatus, now)
	})
	if err != nil {
		return nil, err
	}

	header.AmountPaid = newPaid
	header.BalanceDue = newDue
	header.PaymentStatus = newStatus
	payments, err := o.payRepo.ListByTransaction(header.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(header, payments), nil
}
