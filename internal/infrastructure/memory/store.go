// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa en tests y en modo demo sin PostgreSQL.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Store guarda todo el estado de la aplicación en memoria.
type Store struct {
	mu           sync.RWMutex
	products     map[string]entity.Product
	movements    []entity.StockMovement
	accounts     map[string]entity.CashAccount
	entries      []entity.AccountTransaction
	transactions map[string]entity.Transaction
	payments     []entity.Payment
	users        map[string]entity.User
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		products:     map[string]entity.Product{},
		accounts:     map[string]entity.CashAccount{},
		transactions: map[string]entity.Transaction{},
		users:        map[string]entity.User{},
	}
}

// snapshot copia el estado completo para poder restaurarlo en un rollback.
func (s *Store) snapshot() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := NewStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	c.entries = append(c.entries, s.entries...)
	c.payments = append(c.payments, s.payments...)
	return c
}

// restore vuelve al estado del snapshot.
func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.users = snap.users
	s.movements = snap.movements
	s.entries = snap.entries
	s.payments = snap.payments
}

// Products devuelve la vista ProductRepository del Store.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Movements devuelve la vista StockMovementRepository del Store.
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{s} }

// Accounts devuelve la vista CashAccountRepository del Store.
func (s *Store) Accounts() repository.CashAccountRepository { return &accountRepo{s} }

// Entries devuelve la vista AccountTransactionRepository del Store.
func (s *Store) Entries() repository.AccountTransactionRepository { return &entryRepo{s} }

// Transactions devuelve la vista TransactionRepository del Store.
func (s *Store) Transactions() repository.TransactionRepository { return &transactionRepo{s} }

// Payments devuelve la vista PaymentRepository del Store.
func (s *Store) Payments() repository.PaymentRepository { return &paymentRepo{s} }

// Users devuelve la vista UserRepository del Store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// ── ProductRepository ─────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return errDuplicate()
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el lock del Store ya serializa.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return nil
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) UpdateStock(productID string, stock decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return nil
	}
	p.StockQuantity = stock
	p.SyncStatus = entity.SyncStatusPending
	p.UpdatedAt = at
	r.s.products[productID] = p
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *productRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var low []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.IsLowStock() {
			cp := p
			low = append(low, &cp)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].StockQuantity.LessThan(low[j].StockQuantity) })
	return page(low, limit, offset), nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) SumSignedByProduct(productID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for i := range r.s.movements {
		if r.s.movements[i].ProductID == productID {
			sum = sum.Add(r.s.movements[i].SignedQuantity())
		}
	}
	return sum, nil
}

func (r *movementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.MovementDate.Before(*from) {
			continue
		}
		if to != nil && m.MovementDate.After(*to) {
			continue
		}
		cp := m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MovementDate.After(list[j].MovementDate) })
	return page(list, limit, offset), nil
}

func (r *movementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ReferenceID == referenceID {
			cp := m
			list = append(list, &cp)
		}
	}
	return list, nil
}

// ── CashAccountRepository ─────────────────────────────────────────────────────

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(a *entity.CashAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[a.ID] = *a
	return nil
}

func (r *accountRepo) GetByID(id string) (*entity.CashAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.accounts[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

func (r *accountRepo) GetForUpdate(id string) (*entity.CashAccount, error) {
	return r.GetByID(id)
}

func (r *accountRepo) UpdateBalance(accountID string, balance decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[accountID]
	if !ok {
		return nil
	}
	a.CurrentBalance = balance
	a.SyncStatus = entity.SyncStatusPending
	a.UpdatedAt = at
	r.s.accounts[accountID] = a
	return nil
}

func (r *accountRepo) Update(a *entity.CashAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.ID]; !ok {
		return nil
	}
	r.s.accounts[a.ID] = *a
	return nil
}

func (r *accountRepo) List(onlyActive bool) ([]*entity.CashAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.CashAccount
	for _, a := range r.s.accounts {
		if onlyActive && !a.IsActive {
			continue
		}
		cp := a
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// ── AccountTransactionRepository ──────────────────────────────────────────────

type entryRepo struct{ s *Store }

func (r *entryRepo) Create(e *entity.AccountTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	r.s.entries = append(r.s.entries, *e)
	return nil
}

func (r *entryRepo) SumSignedByAccount(accountID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for i := range r.s.entries {
		if r.s.entries[i].CashAccountID == accountID {
			sum = sum.Add(r.s.entries[i].SignedAmount())
		}
	}
	return sum, nil
}

func (r *entryRepo) ListByAccount(accountID string, from, to *time.Time, limit, offset int) ([]*entity.AccountTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.AccountTransaction
	for _, e := range r.s.entries {
		if e.CashAccountID != accountID {
			continue
		}
		if from != nil && e.EntryDate.Before(*from) {
			continue
		}
		if to != nil && e.EntryDate.After(*to) {
			continue
		}
		cp := e
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EntryDate.After(list[j].EntryDate) })
	return page(list, limit, offset), nil
}

func (r *entryRepo) ListByTransaction(transactionID string) ([]*entity.AccountTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.AccountTransaction
	for _, e := range r.s.entries {
		if e.TransactionID == transactionID {
			cp := e
			list = append(list, &cp)
		}
	}
	return list, nil
}

// ── TransactionRepository ─────────────────────────────────────────────────────

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.transactions {
		if t.TransactionNumber == tx.TransactionNumber {
			return errDuplicate()
		}
	}
	r.s.transactions[tx.ID] = *tx
	return nil
}

func (r *transactionRepo) GetByID(id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.transactions[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (r *transactionRepo) GetByNumber(number string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.transactions {
		if t.TransactionNumber == number {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *transactionRepo) UpdatePaymentProgress(id string, amountPaid, balanceDue decimal.Decimal, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil
	}
	t.AmountPaid = amountPaid
	t.BalanceDue = balanceDue
	t.PaymentStatus = status
	t.SyncStatus = entity.SyncStatusPending
	t.UpdatedAt = at
	r.s.transactions[id] = t
	return nil
}

func (r *transactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	accountTx := map[string]bool{}
	if filter.CashAccountID != "" {
		for _, p := range r.s.payments {
			if p.CashAccountID == filter.CashAccountID {
				accountTx[p.TransactionID] = true
			}
		}
	}
	var list []*entity.Transaction
	for _, t := range r.s.transactions {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.CashAccountID != "" && !accountTx[t.ID] {
			continue
		}
		if filter.From != nil && t.TransactionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.TransactionDate.After(*filter.To) {
			continue
		}
		cp := t
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TransactionDate.After(list[j].TransactionDate) })
	return page(list, filter.Limit, filter.Offset), nil
}

// ── PaymentRepository ─────────────────────────────────────────────────────────

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r *paymentRepo) ListByTransaction(transactionID string) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Payment
	for _, p := range r.s.payments {
		if p.TransactionID == transactionID {
			cp := p
			list = append(list, &cp)
		}
	}
	return list, nil
}

// ── UserRepository ────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return errDuplicate()
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func page[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
