// Package customerrepo manages repository layer of customers.
package customerrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-finbook/finbook/internal/domain"
)

// RepoMem facilitates customer repository layer logic on top of an in-memory
// store. A single mutex serializes every read and write so that duplicate
// checks, balance checks and appends are atomic with respect to each other.
type RepoMem struct {
	mu    sync.Mutex
	byCPF map[string]*domain.Customer
	order []string
}

// NewRepoMem returns an empty customer RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		byCPF: make(map[string]*domain.Customer),
	}
}

// copyCustomer returns a value copy with its own statement slice so callers
// never alias state guarded by the mutex.
func copyCustomer(c *domain.Customer) domain.Customer {
	cp := *c
	cp.Statement = make([]domain.Entry, len(c.Statement))
	copy(cp.Statement, c.Statement)

	return cp
}

// Create registers a customer for the given cpf and returns it. The duplicate
// check and the insert happen in one critical section.
func (r *RepoMem) Create(ctx context.Context, cpf, name string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCPF[cpf]; ok {
		l.Info().Str("cpf", cpf).Err(domain.ErrCustomerAlreadyExists).Send()
		return domain.Customer{}, domain.ErrCustomerAlreadyExists
	}

	c := &domain.Customer{
		ID:        uuid.NewString(),
		CPF:       cpf,
		Name:      name,
		Statement: []domain.Entry{},
	}

	r.byCPF[cpf] = c
	r.order = append(r.order, cpf)

	return copyCustomer(c), nil
}

// GetByCPF returns the customer registered for the given cpf. The lookup is an
// exact string match, the same equality Create uses for its duplicate check.
func (r *RepoMem) GetByCPF(ctx context.Context, cpf string) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byCPF[cpf]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	return copyCustomer(c), nil
}

// List returns all customers in insertion order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]domain.Customer, 0, len(r.order))
	for _, cpf := range r.order {
		items = append(items, copyCustomer(r.byCPF[cpf]))
	}

	return items, nil
}

// UpdateName renames the customer in place and returns the updated copy.
func (r *RepoMem) UpdateName(ctx context.Context, cpf, name string) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byCPF[cpf]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	c.Name = name

	return copyCustomer(c), nil
}

// Delete removes the customer registered for the given cpf along with its
// statement. Removal is by cpf identity, never by position.
func (r *RepoMem) Delete(ctx context.Context, cpf string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCPF[cpf]; !ok {
		return domain.ErrCustomerNotFound
	}

	delete(r.byCPF, cpf)

	for i, key := range r.order {
		if key == cpf {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// AppendEntry records the entry on the customer statement and returns the
// grown statement. For a debit entry the current balance is recomputed inside
// the critical section and must cover the amount, so a sufficiency check can
// never race with another append.
func (r *RepoMem) AppendEntry(ctx context.Context, cpf string, entry domain.Entry) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byCPF[cpf]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}

	if entry.Kind == domain.EntryKindDebit {
		amount, err := decimal.NewFromString(entry.Amount)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, domain.ErrInvalidAmount
		}

		balance, err := domain.Balance(c.Statement)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, err
		}

		if balance.LessThan(amount) {
			l.Info().Str("cpf", cpf).Err(domain.ErrInsufficientFunds).Send()
			return nil, domain.ErrInsufficientFunds
		}
	}

	c.Statement = append(c.Statement, entry)

	statement := make([]domain.Entry, len(c.Statement))
	copy(statement, c.Statement)

	return statement, nil
}

// Statement returns a copy of the customer statement.
func (r *RepoMem) Statement(ctx context.Context, cpf string) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byCPF[cpf]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}

	statement := make([]domain.Entry, len(c.Statement))
	copy(statement, c.Statement)

	return statement, nil
}
