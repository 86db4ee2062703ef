package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.company_id, t.description, t.amount_cents, t.kind, t.date,
	t.external_id, t.bank_account_id, t.created_at, t.updated_at
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var kindStr string

	var externalID sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.CompanyID, &tx.Description, &tx.AmountCents, &kindStr, &tx.Date,
		&externalID, &tx.BankAccountID, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = ledger.Kind(kindStr)
	if !tx.Kind.Valid() {
		return nil, fmt.Errorf("transaction %s has unknown kind %q", tx.ID, kindStr)
	}

	if externalID.Valid {
		tx.ExternalID = &externalID.String
	}

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (company_id, description, amount_cents, kind, date, external_id, bank_account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.CompanyID,
		tx.Description,
		tx.AmountCents,
		tx.Kind,
		tx.Date,
		tx.ExternalID,
		tx.BankAccountID,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// ListUnreconciled excludes any transaction already referenced by a
// reconciliation row.
func (s *Store) ListUnreconciled(ctx context.Context, companyID uuid.UUID) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.company_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM reconciliations r WHERE r.transaction_id = t.id
		  )
		ORDER BY t.date ASC, t.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing unreconciled transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.company_id = $1 AND t.external_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, companyID, externalID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding transaction by external id: %w", err)
	}

	return tx, nil
}

func (s *Store) FindByAmountDateDescription(ctx context.Context, companyID uuid.UUID, amountCents int64, date time.Time, description string) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.company_id = $1 AND t.amount_cents = $2 AND t.date = $3 AND t.description = $4
		LIMIT 1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, companyID, amountCents, date, description))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding transaction by amount/date/description: %w", err)
	}

	return tx, nil
}
