package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind is the direction of a ledger movement.
type Kind string

const (
	KindIncome  Kind = "receita"
	KindExpense Kind = "despesa"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

var ErrNotFound = errors.New("transaction not found")

// Transaction is a ledger entry: money that moved on a given calendar day,
// entered manually or imported from a bank feed.
type Transaction struct {
	ID            uuid.UUID
	CompanyID     uuid.UUID
	Description   string
	AmountCents   int64 // always positive; Kind carries the sign
	Kind          Kind
	Date          time.Time // calendar day, midnight UTC
	ExternalID    *string   // bank-assigned movement id, when imported
	BankAccountID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Day truncates t to a UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
