package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds indicates that the statement balance does not cover a debit.
	ErrInsufficientFunds = errors.New("Insufficient funds!")
	// ErrInvalidAmount indicates that the given amount is not a decimal number.
	ErrInvalidAmount = errors.New("amount must be a decimal number")
	// ErrNegativeAmount indicates that the given amount is zero or negative.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrMalformedEntry indicates a statement entry with an unknown kind or amount.
	ErrMalformedEntry = errors.New("malformed statement entry")
	// ErrMalformedDate indicates a statement date filter that is not a calendar date.
	ErrMalformedDate = errors.New("Malformed date")
)

// EntryKind discriminates credit and debit statement entries.
type EntryKind string

// Statement entry kinds. There are no others; Balance rejects anything else.
const (
	EntryKindCredit EntryKind = "credit"
	EntryKindDebit  EntryKind = "debit"
)

// Entry holds one operation recorded against a customer statement.
type Entry struct {
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Kind        EntryKind `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}

// Balance reduces a statement to the signed sum of its entries: credits add,
// debits subtract. It is computed on demand and never cached.
func Balance(statement []Entry) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, e := range statement {
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return decimal.Zero, ErrMalformedEntry
		}

		switch e.Kind {
		case EntryKindCredit:
			total = total.Add(amount)
		case EntryKindDebit:
			total = total.Sub(amount)
		default:
			return decimal.Zero, ErrMalformedEntry
		}
	}

	return total, nil
}
