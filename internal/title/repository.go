package title

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=title
type Repository interface {
	GetTitle(ctx context.Context, id uuid.UUID) (*Title, error)

	// ListUnreconciled returns the company's titles not currently linked to
	// a reconciliation.
	ListUnreconciled(ctx context.Context, companyID uuid.UUID) ([]*Title, error)
}
