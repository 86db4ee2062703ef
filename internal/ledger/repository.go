package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// ListUnreconciled returns the company's transactions not currently
	// linked to a reconciliation.
	ListUnreconciled(ctx context.Context, companyID uuid.UUID) ([]*Transaction, error)

	// FindByExternalID returns nil (no error) when the company has no
	// transaction with that bank movement id.
	FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*Transaction, error)

	// FindByAmountDateDescription returns nil (no error) when no transaction
	// matches the triple. Fallback duplicate probe for feeds without stable
	// external ids.
	FindByAmountDateDescription(ctx context.Context, companyID uuid.UUID, amountCents int64, date time.Time, description string) (*Transaction, error)
}
