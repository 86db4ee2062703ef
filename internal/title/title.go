package title

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind is the direction of a title: money the company owes or is owed.
type Kind string

const (
	KindPayable    Kind = "pagar"
	KindReceivable Kind = "receber"
)

func (k Kind) Valid() bool {
	return k == KindPayable || k == KindReceivable
}

// Status is derived from the due date and payment trail, never stored.
type Status string

const (
	StatusPending Status = "pendente"
	StatusPaid    Status = "pago"
	StatusOverdue Status = "vencido"
)

var ErrNotFound = errors.New("title not found")

// Title is a payable or receivable commitment against a counterparty.
type Title struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Counterparty string
	AmountCents  int64 // always positive
	DueDate      time.Time
	Kind         Kind
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Status reports the title's state as of the given day.
func (t *Title) Status(today time.Time) Status {
	if t.PaidAt != nil {
		return StatusPaid
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if t.DueDate.Before(day) {
		return StatusOverdue
	}

	return StatusPending
}
