package reconciliation

import (
	"time"

	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/reconciliation"
	"github.com/mbertolucci/conciliador/internal/title"
)

type transactionResponse struct {
	ID          uuid.UUID   `json:"id"`
	Description string      `json:"description"`
	AmountCents int64       `json:"amount_cents"`
	Kind        ledger.Kind `json:"kind"`
	Date        time.Time   `json:"date"`
	ExternalID  *string     `json:"external_id,omitempty"`
}

type titleResponse struct {
	ID           uuid.UUID  `json:"id"`
	Counterparty string     `json:"counterparty"`
	AmountCents  int64      `json:"amount_cents"`
	Kind         title.Kind   `json:"kind"`
	Status       title.Status `json:"status"`
	DueDate      time.Time    `json:"due_date"`
	PaidAt       *time.Time   `json:"paid_at,omitempty"`
}

type reconciliationResponse struct {
	ID             uuid.UUID             `json:"id"`
	TransactionID  uuid.UUID             `json:"transaction_id"`
	TitleID        uuid.UUID             `json:"title_id"`
	Status         reconciliation.Status `json:"status"`
	ValueDiffCents int64                 `json:"value_diff_cents"`
	DayDiff        int                   `json:"day_diff"`
	Note           string                `json:"note,omitempty"`
	UserID         uuid.UUID             `json:"user_id"`
	CreatedAt      time.Time             `json:"created_at"`
	Transaction    *transactionResponse  `json:"transaction,omitempty"`
	Title          *titleResponse        `json:"title,omitempty"`
}

type poolResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Titles       []titleResponse       `json:"titles"`
}

func toTransactionResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		AmountCents: tx.AmountCents,
		Kind:        tx.Kind,
		Date:        tx.Date,
		ExternalID:  tx.ExternalID,
	}
}

func toTitleResponse(t *title.Title) titleResponse {
	return titleResponse{
		ID:           t.ID,
		Counterparty: t.Counterparty,
		AmountCents:  t.AmountCents,
		Kind:         t.Kind,
		Status:       t.Status(time.Now().UTC()),
		DueDate:      t.DueDate,
		PaidAt:       t.PaidAt,
	}
}

func toResponse(rec *reconciliation.Reconciliation) reconciliationResponse {
	resp := reconciliationResponse{
		ID:             rec.ID,
		TransactionID:  rec.TransactionID,
		TitleID:        rec.TitleID,
		Status:         rec.Status,
		ValueDiffCents: rec.ValueDiffCents,
		DayDiff:        rec.DayDiff,
		Note:           rec.Note,
		UserID:         rec.UserID,
		CreatedAt:      rec.CreatedAt,
	}

	if rec.Transaction != nil {
		tx := toTransactionResponse(rec.Transaction)
		resp.Transaction = &tx
	}

	if rec.Title != nil {
		t := toTitleResponse(rec.Title)
		resp.Title = &t
	}

	return resp
}

func toResponseList(recs []*reconciliation.Reconciliation) []reconciliationResponse {
	resp := make([]reconciliationResponse, len(recs))
	for i, rec := range recs {
		resp[i] = toResponse(rec)
	}

	return resp
}

func toPoolResponse(pool *reconciliation.Pool) poolResponse {
	resp := poolResponse{
		Transactions: make([]transactionResponse, len(pool.Transactions)),
		Titles:       make([]titleResponse, len(pool.Titles)),
	}

	for i, tx := range pool.Transactions {
		resp.Transactions[i] = toTransactionResponse(tx)
	}

	for i, t := range pool.Titles {
		resp.Titles[i] = toTitleResponse(t)
	}

	return resp
}
