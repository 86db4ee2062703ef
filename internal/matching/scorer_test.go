package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/matching"
	"github.com/mbertolucci/conciliador/internal/title"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeTx(amountCents int64, date time.Time, kind ledger.Kind, desc string) *ledger.Transaction {
	return &ledger.Transaction{
		Description: desc,
		AmountCents: amountCents,
		Kind:        kind,
		Date:        date,
	}
}

func makeTitle(amountCents int64, due time.Time, kind title.Kind, counterparty string) *title.Title {
	return &title.Title{
		Counterparty: counterparty,
		AmountCents:  amountCents,
		DueDate:      due,
		Kind:         kind,
	}
}

func TestEvaluate_PerfectMatch(t *testing.T) {
	// Identical amount, date and description always score 100.
	tx := makeTx(100000, day(2024, 3, 10), ledger.KindIncome, "Pagamento Cliente X")
	tl := makeTitle(100000, day(2024, 3, 10), title.KindReceivable, "Cliente X")

	ev := matching.Evaluate(tx, tl, matching.DefaultConfig())

	assert.Equal(t, 100, ev.Score)
	assert.Equal(t, matching.ClassPerfect, ev.Classification)
	assert.Equal(t, int64(0), ev.ValueDiffCents)
	assert.Equal(t, 0, ev.DayDiff)
}

func TestEvaluate_WithinTolerances(t *testing.T) {
	// 0.5% off on value (within 1% tolerance) and 2 days off
	// (within the 5-day tolerance): only the date penalty of 3 applies.
	tx := makeTx(100500, day(2024, 3, 12), ledger.KindIncome, "Pagamento Cliente X")
	tl := makeTitle(100000, day(2024, 3, 10), title.KindReceivable, "Cliente X")

	ev := matching.Evaluate(tx, tl, matching.DefaultConfig())

	assert.Equal(t, 97, ev.Score)
	assert.Equal(t, matching.ClassCloseMatch, ev.Classification)
	assert.Equal(t, int64(500), ev.ValueDiffCents)
	assert.Equal(t, 2, ev.DayDiff)
}

func TestEvaluate_DirectionGate(t *testing.T) {
	type testCase struct {
		name      string
		txKind    ledger.Kind
		titleKind title.Kind
		blocked   bool
	}

	tests := []testCase{
		{name: "IncomeReceivable", txKind: ledger.KindIncome, titleKind: title.KindReceivable, blocked: false},
		{name: "ExpensePayable", txKind: ledger.KindExpense, titleKind: title.KindPayable, blocked: false},
		{name: "IncomePayable", txKind: ledger.KindIncome, titleKind: title.KindPayable, blocked: true},
		{name: "ExpenseReceivable", txKind: ledger.KindExpense, titleKind: title.KindReceivable, blocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Everything else identical, so only the gate decides.
			tx := makeTx(50000, day(2024, 5, 1), tt.txKind, "Fornecedor ABC")
			tl := makeTitle(50000, day(2024, 5, 1), tt.titleKind, "Fornecedor ABC")

			ev := matching.Evaluate(tx, tl, matching.DefaultConfig())

			if tt.blocked {
				assert.Equal(t, 0, ev.Score)
				assert.Equal(t, matching.ClassCloseMatch, ev.Classification)
			} else {
				assert.Equal(t, 100, ev.Score)
			}

			assert.Equal(t, !tt.blocked, matching.KindsCompatible(tt.txKind, tt.titleKind))
		})
	}
}

func TestEvaluate_ValueLadder(t *testing.T) {
	cfg := matching.DefaultConfig()
	due := day(2024, 6, 1)

	type testCase struct {
		name      string
		txCents   int64
		wantScore int
	}

	// Title amount 100000 cents; date and description identical so only the
	// value rung moves.
	tests := []testCase{
		{name: "Exact", txCents: 100000, wantScore: 100},
		{name: "WithinTolerance", txCents: 100900, wantScore: 100},
		{name: "WithinTwice", txCents: 101500, wantScore: 92},
		{name: "WithinFiveTimes", txCents: 104000, wantScore: 80},
		{name: "Beyond", txCents: 120000, wantScore: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := makeTx(tt.txCents, due, ledger.KindExpense, "Fornecedor ABC")
			tl := makeTitle(100000, due, title.KindPayable, "Fornecedor ABC")

			ev := matching.Evaluate(tx, tl, cfg)
			assert.Equal(t, tt.wantScore, ev.Score)
		})
	}
}

func TestEvaluate_DateLadder(t *testing.T) {
	cfg := matching.DefaultConfig()

	type testCase struct {
		name      string
		dayOffset int
		wantScore int
	}

	tests := []testCase{
		{name: "SameDay", dayOffset: 0, wantScore: 100},
		{name: "OneDay", dayOffset: 1, wantScore: 97},
		{name: "WithinTolerance", dayOffset: 4, wantScore: 97},
		{name: "WithinTwiceTolerance", dayOffset: 8, wantScore: 80},
		{name: "Beyond", dayOffset: 30, wantScore: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := day(2024, 6, 1)
			tx := makeTx(100000, due.AddDate(0, 0, tt.dayOffset), ledger.KindExpense, "Fornecedor ABC")
			tl := makeTitle(100000, due, title.KindPayable, "Fornecedor ABC")

			ev := matching.Evaluate(tx, tl, cfg)
			assert.Equal(t, tt.wantScore, ev.Score)
		})
	}
}

func TestEvaluate_Monotonicity(t *testing.T) {
	cfg := matching.DefaultConfig()
	due := day(2024, 6, 1)
	tl := makeTitle(100000, due, title.KindPayable, "Fornecedor ABC")

	// Growing value difference never raises the score.
	prev := 101
	for _, cents := range []int64{100000, 100500, 101500, 103000, 105000, 150000} {
		tx := makeTx(cents, due, ledger.KindExpense, "Fornecedor ABC")

		ev := matching.Evaluate(tx, tl, cfg)
		assert.LessOrEqual(t, ev.Score, prev, "amount %d", cents)
		prev = ev.Score
	}

	// Growing day difference never raises the score.
	prev = 101
	for _, offset := range []int{0, 1, 2, 5, 7, 10, 20} {
		tx := makeTx(100000, due.AddDate(0, 0, offset), ledger.KindExpense, "Fornecedor ABC")

		ev := matching.Evaluate(tx, tl, cfg)
		assert.LessOrEqual(t, ev.Score, prev, "offset %d", offset)
		prev = ev.Score
	}
}

func TestEvaluate_Classification(t *testing.T) {
	cfg := matching.DefaultConfig()
	due := day(2024, 6, 1)

	type testCase struct {
		name    string
		txCents int64
		txDate  time.Time
		desc    string
		want    matching.Classification
	}

	tests := []testCase{
		{
			name:    "Perfect",
			txCents: 100000,
			txDate:  due,
			desc:    "Fornecedor ABC",
			want:    matching.ClassPerfect,
		},
		{
			// Value and date match exactly but the description is foreign,
			// so the pair cannot classify as perfect.
			name:    "ExactValuesDissimilarText",
			txCents: 100000,
			txDate:  due,
			desc:    "TED 000123 transferencia",
			want:    matching.ClassValueMatch,
		},
		{
			name:    "ValueMatch",
			txCents: 100000,
			txDate:  due.AddDate(0, 0, 3),
			desc:    "Fornecedor ABC",
			want:    matching.ClassValueMatch,
		},
		{
			name:    "DateMatch",
			txCents: 100700,
			txDate:  due,
			desc:    "Fornecedor ABC",
			want:    matching.ClassDateMatch,
		},
		{
			name:    "CloseMatch",
			txCents: 100700,
			txDate:  due.AddDate(0, 0, 2),
			desc:    "Fornecedor ABC",
			want:    matching.ClassCloseMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := makeTx(tt.txCents, tt.txDate, ledger.KindExpense, tt.desc)
			tl := makeTitle(100000, due, title.KindPayable, "Fornecedor ABC")

			ev := matching.Evaluate(tx, tl, cfg)
			assert.Equal(t, tt.want, ev.Classification)
		})
	}
}

func TestEvaluate_ZeroTitleAmount(t *testing.T) {
	// Division guard: a zero title amount must not panic or skew the score.
	tx := makeTx(100, day(2024, 6, 1), ledger.KindExpense, "Fornecedor ABC")
	tl := makeTitle(0, day(2024, 6, 1), title.KindPayable, "Fornecedor ABC")

	ev := matching.Evaluate(tx, tl, matching.DefaultConfig())

	assert.Equal(t, 100, ev.Score)
	assert.Equal(t, int64(100), ev.ValueDiffCents)
}

func TestEvaluate_Deterministic(t *testing.T) {
	tx := makeTx(100500, day(2024, 3, 12), ledger.KindIncome, "Pagamento Cliente X")
	tl := makeTitle(100000, day(2024, 3, 10), title.KindReceivable, "Cliente X")

	first := matching.Evaluate(tx, tl, matching.DefaultConfig())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, matching.Evaluate(tx, tl, matching.DefaultConfig()))
	}
}
