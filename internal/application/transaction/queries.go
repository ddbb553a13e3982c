package transaction

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// GetTransaction devuelve una cabecera con sus pagos.
func (o *Orchestrator) GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	header, err := o.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := o.payRepo.ListByTransaction(id)
	if err != nil {
		return nil, err
	}
	return toResponse(header, payments), nil
}

// History devuelve el historial filtrado por cuenta, rango de fechas y tipo.
func (o *Orchestrator) History(ctx context.Context, filter repository.TransactionFilter) ([]*dto.TransactionResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	headers, err := o.txRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(headers))
	for _, h := range headers {
		payments, err := o.payRepo.ListByTransaction(h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toResponse(h, payments))
	}
	return out, nil
}
