package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/title"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectTitleColumns = `
	o.id, o.company_id, o.counterparty, o.amount_cents, o.due_date, o.kind,
	o.paid_at, o.created_at, o.updated_at
`

func scanTitle(s scanner) (*title.Title, error) {
	var t title.Title

	var kindStr string

	if err := s.Scan(
		&t.ID, &t.CompanyID, &t.Counterparty, &t.AmountCents, &t.DueDate, &kindStr,
		&t.PaidAt, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Kind = title.Kind(kindStr)
	if !t.Kind.Valid() {
		return nil, fmt.Errorf("title %s has unknown kind %q", t.ID, kindStr)
	}

	return &t, nil
}

func (s *Store) GetTitle(ctx context.Context, id uuid.UUID) (*title.Title, error) {
	query := `SELECT ` + selectTitleColumns + `
		FROM titles o
		WHERE o.id = $1`

	t, err := scanTitle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, title.ErrNotFound
		}

		return nil, fmt.Errorf("getting title: %w", err)
	}

	return t, nil
}

func (s *Store) ListUnreconciled(ctx context.Context, companyID uuid.UUID) ([]*title.Title, error) {
	query := `SELECT ` + selectTitleColumns + `
		FROM titles o
		WHERE o.company_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM reconciliations r WHERE r.title_id = o.id
		  )
		ORDER BY o.due_date ASC, o.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing unreconciled titles: %w", err)
	}
	defer rows.Close()

	var titles []*title.Title

	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}

		titles = append(titles, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating titles: %w", err)
	}

	return titles, nil
}
