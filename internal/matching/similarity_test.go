package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbertolucci/conciliador/internal/matching"
)

func TestDayDistance(t *testing.T) {
	type testCase struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}

	tests := []testCase{
		{
			name: "SameDay",
			a:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "TwoDaysApart",
			a:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "OrderDoesNotMatter",
			a:    time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want: 10,
		},
		{
			name: "TimeOfDayIgnored",
			a:    time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "AcrossMonths",
			a:    time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matching.DayDistance(tt.a, tt.b))
		})
	}
}

func TestTextSimilarity(t *testing.T) {
	type testCase struct {
		name string
		a    string
		b    string
		want float64
	}

	tests := []testCase{
		{
			name: "Identical",
			a:    "Pagamento Cliente X",
			b:    "Pagamento Cliente X",
			want: 1.0,
		},
		{
			name: "CaseAndWhitespaceInsensitive",
			a:    "  PAGAMENTO   cliente x ",
			b:    "pagamento cliente X",
			want: 1.0,
		},
		{
			name: "Containment",
			a:    "Pagamento Cliente X",
			b:    "Cliente X",
			want: 0.8,
		},
		{
			name: "ContainmentEitherDirection",
			a:    "Cliente X",
			b:    "Pagamento Cliente X",
			want: 0.8,
		},
		{
			name: "BothEmpty",
			a:    "",
			b:    "",
			want: 1.0,
		},
		{
			name: "OneEmpty",
			a:    "Fornecedor ABC",
			b:    "",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, matching.TextSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestTextSimilarity_Blend(t *testing.T) {
	// "pagamento fornecedor abc" vs "fornecedor abc ltda": two of four
	// distinct words shared, so the word component is 0.5.
	sim := matching.TextSimilarity("Pagamento Fornecedor ABC", "Fornecedor ABC Ltda")

	assert.Greater(t, sim, 0.0)
	assert.Less(t, sim, 0.8)

	// Entirely different texts stay near zero.
	low := matching.TextSimilarity("Aluguel escritorio", "TED recebida 00291")
	assert.Less(t, low, 0.4)
}

func TestTextSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"Pagamento Cliente X", "Cliente X"},
		{"abc", "xyz"},
		{"a b c d", "d c b a"},
		{"", "x"},
	}

	for _, p := range pairs {
		sim := matching.TextSimilarity(p[0], p[1])
		assert.GreaterOrEqual(t, sim, 0.0)
		assert.LessOrEqual(t, sim, 1.0)
	}
}
