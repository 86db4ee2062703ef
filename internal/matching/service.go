package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/title"
)

// Suggestion is a transient candidate pairing. It is recomputed on demand
// and never persisted.
type Suggestion struct {
	Transaction *ledger.Transaction
	Title       *title.Title
	Evaluation
}

// Suggester cross-joins a company's unreconciled transactions and titles
// through the scorer and ranks the viable pairs.
type Suggester struct {
	transactions ledger.Repository
	titles       title.Repository
	cfg          Config
}

func NewSuggester(transactions ledger.Repository, titles title.Repository, cfg Config) *Suggester {
	return &Suggester{
		transactions: transactions,
		titles:       titles,
		cfg:          cfg,
	}
}

// Suggest returns candidate pairings with score >= MinScore, best first.
// Ties break on smaller day difference, then smaller value difference.
// An empty pool on either side yields an empty list, not an error.
func (s *Suggester) Suggest(ctx context.Context, companyID uuid.UUID, override *Config) ([]Suggestion, error) {
	cfg := s.cfg
	if override != nil {
		cfg = *override
	}

	txs, err := s.transactions.ListUnreconciled(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading unreconciled transactions: %w", err)
	}

	titles, err := s.titles.ListUnreconciled(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading unreconciled titles: %w", err)
	}

	suggestions := []Suggestion{}

	for _, tx := range txs {
		for _, tl := range titles {
			// Incompatible directions never surface, whatever MinScore is.
			if !KindsCompatible(tx.Kind, tl.Kind) {
				continue
			}

			ev := Evaluate(tx, tl, cfg)
			if ev.Score < cfg.MinScore {
				continue
			}

			suggestions = append(suggestions, Suggestion{
				Transaction: tx,
				Title:       tl,
				Evaluation:  ev,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]

		if a.Score != b.Score {
			return a.Score > b.Score
		}

		if a.DayDiff != b.DayDiff {
			return a.DayDiff < b.DayDiff
		}

		return a.ValueDiffCents < b.ValueDiffCents
	})

	return suggestions, nil
}
