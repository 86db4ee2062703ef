package reconciliation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/matching"
	"github.com/mbertolucci/conciliador/internal/title"
)

// Service validates and persists accepted pairings. The upfront existence
// checks are a fast path; the storage uniqueness constraints are the
// authoritative guard against concurrent reconciles of the same leg.
type Service struct {
	recs         Repository
	transactions ledger.Repository
	titles       title.Repository
	suggester    *matching.Suggester
}

func NewService(recs Repository, transactions ledger.Repository, titles title.Repository, suggester *matching.Suggester) *Service {
	return &Service{
		recs:         recs,
		transactions: transactions,
		titles:       titles,
		suggester:    suggester,
	}
}

// Suggestions proposes candidate pairings without side effects.
func (s *Service) Suggestions(ctx context.Context, companyID uuid.UUID, override *matching.Config) ([]matching.Suggestion, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("company id: %w", ErrInvalidInput)
	}

	suggestions, err := s.suggester.Suggest(ctx, companyID, override)
	if err != nil {
		return nil, storeFailure("proposing suggestions", err)
	}

	return suggestions, nil
}

// Reconcile pairs one transaction with one title and persists the record.
func (s *Service) Reconcile(ctx context.Context, companyID, userID, txID, titleID uuid.UUID, note string) (*Reconciliation, error) {
	if companyID == uuid.Nil || userID == uuid.Nil || txID == uuid.Nil || titleID == uuid.Nil {
		return nil, fmt.Errorf("company, user, transaction and title ids are required: %w", ErrInvalidInput)
	}

	tx, err := s.transactions.GetTransaction(ctx, txID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
		}

		return nil, storeFailure("loading transaction", err)
	}

	if tx.CompanyID != companyID {
		return nil, fmt.Errorf("transaction %s: %w", txID, ErrOwnershipMismatch)
	}

	tl, err := s.titles.GetTitle(ctx, titleID)
	if err != nil {
		if errors.Is(err, title.ErrNotFound) {
			return nil, fmt.Errorf("title %s: %w", titleID, ErrNotFound)
		}

		return nil, storeFailure("loading title", err)
	}

	if tl.CompanyID != companyID {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrOwnershipMismatch)
	}

	// Direct calls bypass the suggester, so the direction gate is enforced
	// again here.
	if !matching.KindsCompatible(tx.Kind, tl.Kind) {
		return nil, fmt.Errorf("transaction is %s, title is %s: %w", tx.Kind, tl.Kind, ErrIncompatibleKind)
	}

	if err := s.checkUnreconciled(ctx, txID, titleID); err != nil {
		return nil, err
	}

	valueDiff := tx.AmountCents - tl.AmountCents
	if valueDiff < 0 {
		valueDiff = -valueDiff
	}

	dayDiff := matching.DayDistance(tx.Date, tl.DueDate)

	status := StatusMatchedWithDiff
	if valueDiff == 0 && dayDiff == 0 {
		status = StatusMatched
	}

	rec := &Reconciliation{
		CompanyID:      companyID,
		TransactionID:  txID,
		TitleID:        titleID,
		Status:         status,
		ValueDiffCents: valueDiff,
		DayDiff:        dayDiff,
		Note:           note,
		UserID:         userID,
	}

	// A concurrent reconcile of either leg loses here on the uniqueness
	// constraint, which the store reports as ErrAlreadyReconciled.
	if err := s.recs.Create(ctx, rec); err != nil {
		if errors.Is(err, ErrAlreadyReconciled) {
			return nil, err
		}

		return nil, storeFailure("creating reconciliation", err)
	}

	return rec, nil
}

// AcceptSuggestion re-validates a suggestion and persists it. Suggestions
// are stale snapshots: every precondition is re-checked at acceptance time,
// nothing from the snapshot is trusted.
func (s *Service) AcceptSuggestion(ctx context.Context, companyID, userID uuid.UUID, sug matching.Suggestion, note string) (*Reconciliation, error) {
	if sug.Transaction == nil || sug.Title == nil {
		return nil, fmt.Errorf("suggestion is missing a transaction or title: %w", ErrInvalidInput)
	}

	return s.Reconcile(ctx, companyID, userID, sug.Transaction.ID, sug.Title.ID, note)
}

// Undo deletes the reconciliation, returning both legs to the unreconciled
// pool. It never touches the transaction or title rows. Undoing an unknown
// id surfaces ErrNotFound so callers can detect a double undo.
func (s *Service) Undo(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("reconciliation id is required: %w", ErrInvalidInput)
	}

	if err := s.recs.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("reconciliation %s: %w", id, ErrNotFound)
		}

		return storeFailure("deleting reconciliation", err)
	}

	return nil
}

const defaultListLimit = 100

// List returns the company's reconciliations with resolved detail, most
// recent first.
func (s *Service) List(ctx context.Context, companyID uuid.UUID, limit int) ([]*Reconciliation, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("company id: %w", ErrInvalidInput)
	}

	if limit <= 0 {
		limit = defaultListLimit
	}

	recs, err := s.recs.ListByCompany(ctx, companyID, limit)
	if err != nil {
		return nil, storeFailure("listing reconciliations", err)
	}

	return recs, nil
}

// Pool is the set of records still available for matching.
type Pool struct {
	Transactions []*ledger.Transaction
	Titles       []*title.Title
}

// Unreconciled returns the pool available for manual or suggested matching.
func (s *Service) Unreconciled(ctx context.Context, companyID uuid.UUID) (*Pool, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("company id: %w", ErrInvalidInput)
	}

	txs, err := s.transactions.ListUnreconciled(ctx, companyID)
	if err != nil {
		return nil, storeFailure("listing unreconciled transactions", err)
	}

	titles, err := s.titles.ListUnreconciled(ctx, companyID)
	if err != nil {
		return nil, storeFailure("listing unreconciled titles", err)
	}

	return &Pool{Transactions: txs, Titles: titles}, nil
}

func (s *Service) checkUnreconciled(ctx context.Context, txID, titleID uuid.UUID) error {
	existing, err := s.recs.FindByTransactionID(ctx, txID)
	if err != nil {
		return storeFailure("checking transaction leg", err)
	}

	if existing != nil {
		return fmt.Errorf("transaction %s: %w", txID, ErrAlreadyReconciled)
	}

	existing, err = s.recs.FindByTitleID(ctx, titleID)
	if err != nil {
		return storeFailure("checking title leg", err)
	}

	if existing != nil {
		return fmt.Errorf("title %s: %w", titleID, ErrAlreadyReconciled)
	}

	return nil
}

// storeFailure tags an unexpected store error as retryable.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
