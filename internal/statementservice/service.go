// Package statementservice manages business logic layer of statement operations.
package statementservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-finbook/finbook/internal/domain"
)

// Withdrawals carry a fixed description; the caller supplies none.
const withdrawDescription = "withdraw"

// Repo provides data access layer interface needed by statement service layer.
type Repo interface {
	AppendEntry(ctx context.Context, cpf string, entry domain.Entry) ([]domain.Entry, error)
	Statement(ctx context.Context, cpf string) ([]domain.Entry, error)
}

// Service facilitates statement service layer logic.
type Service struct {
	repo Repo
}

// New returns statement service struct to manage deposit, withdraw and
// statement bussines logic.
func New(sr Repo) *Service {
	return &Service{repo: sr}
}

func validAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Zero, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}

// Deposit records a credit entry on the customer statement and returns the
// grown statement.
func (s *Service) Deposit(ctx context.Context, cpf, amount, description string) ([]domain.Entry, error) {
	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return nil, err
	}

	entry := domain.Entry{
		Amount:      amountDecimal.String(),
		Description: description,
		Kind:        domain.EntryKindCredit,
		CreatedAt:   time.Now().UTC(),
	}

	statement, err := s.repo.AppendEntry(ctx, cpf, entry)
	if err != nil {
		return nil, err
	}

	return statement, nil
}

// Withdraw records a debit entry on the customer statement and returns it.
// The repository rejects the entry when the balance does not cover the amount;
// a failed withdrawal records nothing.
func (s *Service) Withdraw(ctx context.Context, cpf, amount string) (domain.Entry, error) {
	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return domain.Entry{}, err
	}

	entry := domain.Entry{
		Amount:      amountDecimal.String(),
		Description: withdrawDescription,
		Kind:        domain.EntryKindDebit,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.repo.AppendEntry(ctx, cpf, entry); err != nil {
		return domain.Entry{}, err
	}

	return entry, nil
}

// Statement returns the full customer statement in chronological order.
func (s *Service) Statement(ctx context.Context, cpf string) ([]domain.Entry, error) {
	statement, err := s.repo.Statement(ctx, cpf)
	if err != nil {
		return nil, err
	}

	return statement, nil
}

// StatementByDate returns the entries created on the given calendar day.
// Both sides are normalized to a (year, month, day) triple; time of day never
// participates in the comparison.
func (s *Service) StatementByDate(ctx context.Context, cpf string, day time.Time) ([]domain.Entry, error) {
	statement, err := s.repo.Statement(ctx, cpf)
	if err != nil {
		return nil, err
	}

	wantYear, wantMonth, wantDay := day.Date()

	filtered := []domain.Entry{}

	for _, e := range statement {
		year, month, entryDay := e.CreatedAt.Date()
		if year == wantYear && month == wantMonth && entryDay == wantDay {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}

// Balance reduces the customer statement to its current signed total.
func (s *Service) Balance(ctx context.Context, cpf string) (string, error) {
	l := zerolog.Ctx(ctx)

	statement, err := s.repo.Statement(ctx, cpf)
	if err != nil {
		return "", err
	}

	balance, err := domain.Balance(statement)
	if err != nil {
		l.Error().Err(err).Send()
		return "", err
	}

	return balance.String(), nil
}
