package bankimport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/ledger"
)

var ErrInvalidInput = errors.New("invalid input")

// Movement is one externally-sourced bank entry, as it arrives from a feed.
// Amount is signed: positive for money in, negative for money out.
type Movement struct {
	ExternalID  string
	Description string
	AmountCents int64
	Date        time.Time
}

// Result counts what happened to a batch.
type Result struct {
	Imported   int
	Duplicates int
	Errors     int
}

// Service guards the ledger against importing the same bank movement twice.
// A movement is a duplicate when its external id already exists for the
// company, or, for feeds without stable ids, when an existing transaction
// carries the same amount, date and description.
type Service struct {
	transactions ledger.Repository
}

func NewService(transactions ledger.Repository) *Service {
	return &Service{transactions: transactions}
}

// Import processes the batch row by row. A failing row increments the error
// count and the batch continues; rows are handled sequentially so each
// duplicate probe sees the rows inserted before it.
func (s *Service) Import(ctx context.Context, companyID uuid.UUID, movements []Movement) (Result, error) {
	if companyID == uuid.Nil {
		return Result{}, fmt.Errorf("company id is required: %w", ErrInvalidInput)
	}

	var result Result

	for _, m := range movements {
		switch imported, err := s.importOne(ctx, companyID, m); {
		case err != nil:
			result.Errors++
		case imported:
			result.Imported++
		default:
			result.Duplicates++
		}
	}

	return result, nil
}

func (s *Service) importOne(ctx context.Context, companyID uuid.UUID, m Movement) (bool, error) {
	if m.AmountCents == 0 || m.Description == "" {
		return false, fmt.Errorf("movement needs an amount and description: %w", ErrInvalidInput)
	}

	if m.ExternalID != "" {
		existing, err := s.transactions.FindByExternalID(ctx, companyID, m.ExternalID)
		if err != nil {
			return false, err
		}

		if existing != nil {
			return false, nil
		}
	}

	kind := ledger.KindIncome

	amount := m.AmountCents
	if amount < 0 {
		kind = ledger.KindExpense
		amount = -amount
	}

	date := ledger.Day(m.Date)

	existing, err := s.transactions.FindByAmountDateDescription(ctx, companyID, amount, date, m.Description)
	if err != nil {
		return false, err
	}

	if existing != nil {
		return false, nil
	}

	tx := &ledger.Transaction{
		CompanyID:   companyID,
		Description: m.Description,
		AmountCents: amount,
		Kind:        kind,
		Date:        date,
	}

	if m.ExternalID != "" {
		externalID := m.ExternalID
		tx.ExternalID = &externalID
	}

	if err := s.transactions.CreateTransaction(ctx, tx); err != nil {
		return false, err
	}

	return true, nil
}
