package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/reconciliation"
	"github.com/mbertolucci/conciliador/internal/title"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts the reconciliation. The reconciliations table carries a
// unique constraint per leg, so two racing inserts for the same transaction
// or title resolve to exactly one success and one ErrAlreadyReconciled.
func (s *Store) Create(ctx context.Context, rec *reconciliation.Reconciliation) error {
	query := `
		INSERT INTO reconciliations (company_id, transaction_id, title_id, status, value_diff_cents, day_diff, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.CompanyID,
		rec.TransactionID,
		rec.TitleID,
		rec.Status,
		rec.ValueDiffCents,
		rec.DayDiff,
		rec.Note,
		rec.UserID,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("constraint %s: %w", pgErr.ConstraintName, reconciliation.ErrAlreadyReconciled)
		}

		return fmt.Errorf("creating reconciliation: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reconciliations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting reconciliation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting reconciliation: %w", err)
	}

	if affected == 0 {
		return reconciliation.ErrNotFound
	}

	return nil
}

const selectReconciliationColumns = `
	r.id, r.company_id, r.transaction_id, r.title_id, r.status,
	r.value_diff_cents, r.day_diff, r.note, r.user_id, r.created_at
`

func scanReconciliation(s interface{ Scan(dest ...any) error }) (*reconciliation.Reconciliation, error) {
	var rec reconciliation.Reconciliation

	var statusStr string

	if err := s.Scan(
		&rec.ID, &rec.CompanyID, &rec.TransactionID, &rec.TitleID, &statusStr,
		&rec.ValueDiffCents, &rec.DayDiff, &rec.Note, &rec.UserID, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	rec.Status = reconciliation.Status(statusStr)

	return &rec, nil
}

// ListByCompany joins in transaction and title detail so callers can render
// the audit trail without further lookups.
func (s *Store) ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]*reconciliation.Reconciliation, error) {
	query := `SELECT ` + selectReconciliationColumns + `,
			t.id, t.company_id, t.description, t.amount_cents, t.kind, t.date,
			t.external_id, t.bank_account_id, t.created_at, t.updated_at,
			o.id, o.company_id, o.counterparty, o.amount_cents, o.due_date, o.kind,
			o.paid_at, o.created_at, o.updated_at
		FROM reconciliations r
		JOIN transactions t ON t.id = r.transaction_id
		JOIN titles o ON o.id = r.title_id
		WHERE r.company_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reconciliations: %w", err)
	}
	defer rows.Close()

	var recs []*reconciliation.Reconciliation

	for rows.Next() {
		var (
			rec        reconciliation.Reconciliation
			statusStr  string
			tx         ledger.Transaction
			txKind     string
			externalID sql.NullString
			tl         title.Title
			titleKind  string
		)

		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.TransactionID, &rec.TitleID, &statusStr,
			&rec.ValueDiffCents, &rec.DayDiff, &rec.Note, &rec.UserID, &rec.CreatedAt,
			&tx.ID, &tx.CompanyID, &tx.Description, &tx.AmountCents, &txKind, &tx.Date,
			&externalID, &tx.BankAccountID, &tx.CreatedAt, &tx.UpdatedAt,
			&tl.ID, &tl.CompanyID, &tl.Counterparty, &tl.AmountCents, &tl.DueDate, &titleKind,
			&tl.PaidAt, &tl.CreatedAt, &tl.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning reconciliation: %w", err)
		}

		rec.Status = reconciliation.Status(statusStr)
		tx.Kind = ledger.Kind(txKind)

		if externalID.Valid {
			tx.ExternalID = &externalID.String
		}

		tl.Kind = title.Kind(titleKind)
		rec.Transaction = &tx
		rec.Title = &tl

		recs = append(recs, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reconciliations: %w", err)
	}

	return recs, nil
}

func (s *Store) FindByTransactionID(ctx context.Context, txID uuid.UUID) (*reconciliation.Reconciliation, error) {
	query := `SELECT ` + selectReconciliationColumns + `
		FROM reconciliations r
		WHERE r.transaction_id = $1`

	rec, err := scanReconciliation(s.db.QueryRowContext(ctx, query, txID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding reconciliation by transaction: %w", err)
	}

	return rec, nil
}

func (s *Store) FindByTitleID(ctx context.Context, titleID uuid.UUID) (*reconciliation.Reconciliation, error) {
	query := `SELECT ` + selectReconciliationColumns + `
		FROM reconciliations r
		WHERE r.title_id = $1`

	rec, err := scanReconciliation(s.db.QueryRowContext(ctx, query, titleID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding reconciliation by title: %w", err)
	}

	return rec, nil
}
