package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/cashaccount"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/money"
)

// RecordTransfer mueve dinero entre dos cuentas distintas de la misma
// moneda: una cabecera (type=transfer, pagada), exactamente dos Payments
// (transfer_out/transfer_in) y exactamente dos AccountTransactions con
// direcciones opuestas y la misma magnitud, con los balances capturados al
// momento del asiento. El dinero total se conserva.
func (o *Orchestrator) RecordTransfer(ctx context.Context, shopID, userID string, in dto.TransferRequest) (*dto.TransactionResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if in.SourceAccountID == "" || in.DestinationAccountID == "" {
		return nil, domain.ErrInvalidCounterparty
	}
	if in.SourceAccountID == in.DestinationAccountID {
		return nil, domain.ErrSameAccountTransfer
	}

	// Validación fuera de la tx (solo lectura)
	source, err := o.accountRepo.GetByID(in.SourceAccountID)
	if err != nil {
		return nil, err
	}
	dest, err := o.accountRepo.GetByID(in.DestinationAccountID)
	if err != nil {
		return nil, err
	}
	if source == nil || dest == nil || !source.IsActive || !dest.IsActive {
		return nil, domain.ErrAccountNotFound
	}
	// Sin paso de cambio de moneda: entre monedas distintas se rechaza
	if source.Currency != dest.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	now := time.Now()
	txDate := now
	if in.TransferDate != nil {
		txDate = *in.TransferDate
	}
	description := in.Description
	if description == "" {
		description = fmt.Sprintf("transferencia %s: %s -> %s",
			money.Format(in.Amount, source.Currency), source.Name, dest.Name)
	}

	header := &entity.Transaction{
		ID:                uuid.New().String(),
		ShopID:            shopID,
		Type:              entity.TransactionTypeTransfer,
		TransactionNumber: numberFor(entity.TransactionTypeTransfer, now),
		Subtotal:          in.Amount,
		TotalAmount:       in.Amount,
		AmountPaid:        in.Amount,
		PaymentStatus:     entity.PaymentStatusPaid,
		TransactionDate:   txDate,
		Notes:             description,
		SyncStatus:        entity.SyncStatusPending,
		CreatedAt:         now,
		CreatedBy:         userID,
		UpdatedAt:         now,
	}

	var payments []*entity.Payment

	err = o.txRunner.RunLedger(ctx, func(
		txRepo repository.TransactionRepository,
		payRepo repository.PaymentRepository,
		entryRepo repository.AccountTransactionRepository,
		accountRepo repository.CashAccountRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		if err := txRepo.Create(header); err != nil {
			return err
		}
		// Débito en origen y crédito en destino por la MISMA magnitud
		legs := []struct {
			accountID string
			entryType string
		}{
			{in.SourceAccountID, entity.EntryTypeTransferOut},
			{in.DestinationAccountID, entity.EntryTypeTransferIn},
		}
		for _, leg := range legs {
			payment := &entity.Payment{
				ID:              uuid.New().String(),
				TransactionID:   header.ID,
				CashAccountID:   leg.accountID,
				Amount:          in.Amount,
				PaymentMethod:   entity.PaymentMethodTransfer,
				ReferenceNumber: in.ReferenceNumber,
				PaymentDate:     txDate,
				SyncStatus:      entity.SyncStatusPending,
				CreatedAt:       now,
				CreatedBy:       userID,
			}
			if err := payRepo.Create(payment); err != nil {
				return err
			}
			if _, err := cashaccount.PostEntryInTx(entryRepo, accountRepo,
				leg.accountID, in.Amount, leg.entryType,
				cashaccount.EntryRef{
					TransactionID: header.ID,
					PaymentID:     payment.ID,
					Description:   description,
					UserID:        userID,
				}, now); err != nil {
				return err
			}
			payments = append(payments, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(header, payments), nil
}
