package reconciliation

import (
	"time"

	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/title"
)

// Status records whether the pair matched exactly or within tolerance.
type Status string

const (
	StatusMatched         Status = "conciliado"
	StatusMatchedWithDiff Status = "conciliado_com_diferenca"
)

// Reconciliation is the durable, unique pairing of one transaction with one
// title. Undoing deletes this record and nothing else.
type Reconciliation struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	TransactionID  uuid.UUID
	TitleID        uuid.UUID
	Status         Status
	ValueDiffCents int64
	DayDiff        int
	Note           string
	UserID         uuid.UUID
	CreatedAt      time.Time

	// Loaded via JOIN on list queries.
	Transaction *ledger.Transaction
	Title       *title.Title
}
