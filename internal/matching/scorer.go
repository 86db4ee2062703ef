package matching

import (
	"math"

	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/title"
)

// Config tunes the scorer. Tolerances are fractions (0.01 means 1%).
type Config struct {
	ValueTolerance    float64
	DateToleranceDays int
	MinScore          int
}

func DefaultConfig() Config {
	return Config{
		ValueTolerance:    0.01,
		DateToleranceDays: 5,
		MinScore:          60,
	}
}

// Classification tags how a pair matched.
type Classification string

const (
	ClassPerfect    Classification = "perfect"
	ClassValueMatch Classification = "value_match"
	ClassDateMatch  Classification = "date_match"
	ClassCloseMatch Classification = "close_match"
)

// Evaluation is the scorer's verdict on one transaction/title pair.
type Evaluation struct {
	Score          int
	ValueDiffCents int64
	DayDiff        int
	DescSimilarity float64
	Classification Classification
}

// KindsCompatible reports whether a transaction direction can legally pair
// with a title direction: income with receivables, expenses with payables.
func KindsCompatible(txKind ledger.Kind, titleKind title.Kind) bool {
	switch txKind {
	case ledger.KindIncome:
		return titleKind == title.KindReceivable
	case ledger.KindExpense:
		return titleKind == title.KindPayable
	default:
		return false
	}
}

// Evaluate scores a transaction against a title on a 0-100 scale. It is a
// pure function: no I/O, identical inputs always yield identical output.
func Evaluate(tx *ledger.Transaction, tl *title.Title, cfg Config) Evaluation {
	if !KindsCompatible(tx.Kind, tl.Kind) {
		// Impossible pairing: zero score and saturated differences so the
		// pair can never clear a minimum score.
		return Evaluation{
			Score:          0,
			ValueDiffCents: math.MaxInt64,
			DayDiff:        math.MaxInt32,
			DescSimilarity: 0,
			Classification: ClassCloseMatch,
		}
	}

	valueDiff := tx.AmountCents - tl.AmountCents
	if valueDiff < 0 {
		valueDiff = -valueDiff
	}

	var valueDiffPct float64
	if tl.AmountCents != 0 {
		valueDiffPct = float64(valueDiff) / float64(tl.AmountCents)
	}

	dayDiff := DayDistance(tx.Date, tl.DueDate)
	descSim := TextSimilarity(tx.Description, tl.Counterparty)

	score := 100

	switch {
	case valueDiffPct <= cfg.ValueTolerance:
	case valueDiffPct <= 2*cfg.ValueTolerance:
		score -= 8
	case valueDiffPct <= 5*cfg.ValueTolerance:
		score -= 20
	default:
		score -= 40
	}

	switch {
	case dayDiff == 0:
	case dayDiff <= cfg.DateToleranceDays:
		score -= 3
	case dayDiff <= 2*cfg.DateToleranceDays:
		score -= 20
	default:
		score -= 30
	}

	switch {
	case descSim >= 0.8:
	case descSim >= 0.6:
		score -= 5
	case descSim >= 0.4:
		score -= 15
	default:
		score -= 30
	}

	if score < 0 {
		score = 0
	}

	if score > 100 {
		score = 100
	}

	return Evaluation{
		Score:          score,
		ValueDiffCents: valueDiff,
		DayDiff:        dayDiff,
		DescSimilarity: descSim,
		Classification: classify(valueDiff, dayDiff, descSim),
	}
}

func classify(valueDiff int64, dayDiff int, descSim float64) Classification {
	switch {
	case valueDiff == 0 && dayDiff == 0 && descSim >= 0.8:
		return ClassPerfect
	case valueDiff == 0:
		return ClassValueMatch
	case dayDiff == 0:
		return ClassDateMatch
	default:
		return ClassCloseMatch
	}
}
