package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CashAccountRepository define el puerto de persistencia para CashAccount.
// GetForUpdate bloquea la fila de la cuenta; UpdateBalance persiste el
// balance derivado tras cada asiento (mismo alcance atómico que el asiento).
type CashAccountRepository interface {
	Create(account *entity.CashAccount) error
	GetByID(id string) (*entity.CashAccount, error)
	GetForUpdate(id string) (*entity.CashAccount, error)
	UpdateBalance(accountID string, balance decimal.Decimal, at time.Time) error
	Update(account *entity.CashAccount) error
	List(onlyActive bool) ([]*entity.CashAccount, error)
}
