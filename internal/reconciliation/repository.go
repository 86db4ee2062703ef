package reconciliation

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=reconciliation
type Repository interface {
	// Create inserts the record. The store must enforce uniqueness on the
	// transaction leg and on the title leg and report a violation of either
	// as ErrAlreadyReconciled.
	Create(ctx context.Context, rec *Reconciliation) error

	// Delete removes the record, returning ErrNotFound when the id does not
	// exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByCompany returns reconciliations with transaction and title
	// detail resolved, most recent first.
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]*Reconciliation, error)

	// FindByTransactionID returns nil (no error) when the transaction is
	// not reconciled.
	FindByTransactionID(ctx context.Context, txID uuid.UUID) (*Reconciliation, error)

	// FindByTitleID returns nil (no error) when the title is not reconciled.
	FindByTitleID(ctx context.Context, titleID uuid.UUID) (*Reconciliation, error)
}
