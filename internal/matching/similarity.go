package matching

import (
	"strings"
	"time"
)

// DayDistance returns the absolute difference between two calendar days.
// Time-of-day and zone are ignored.
func DayDistance(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	diff := da.Sub(db)
	if diff < 0 {
		diff = -diff
	}

	return int(diff.Hours() / 24)
}

// TextSimilarity compares two free-text descriptions and returns a value in
// [0, 1]. Equality after case and whitespace folding scores 1.0, containment
// 0.8; anything else is a blend of shared-word overlap and positional
// character agreement.
func TextSimilarity(a, b string) float64 {
	na := normalizeText(a)
	nb := normalizeText(b)

	if na == nb {
		return 1.0
	}

	if na == "" || nb == "" {
		return 0.0
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}

	sim := 0.7*wordOverlap(na, nb) + 0.3*prefixAgreement(na, nb)

	if sim > 1.0 {
		sim = 1.0
	}

	if sim < 0.0 {
		sim = 0.0
	}

	return sim
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// wordOverlap is the ratio of words the two texts share over all distinct
// words across both.
func wordOverlap(a, b string) float64 {
	wordsA := make(map[string]struct{})
	for _, w := range strings.Fields(a) {
		wordsA[w] = struct{}{}
	}

	wordsB := make(map[string]struct{})
	for _, w := range strings.Fields(b) {
		wordsB[w] = struct{}{}
	}

	shared := 0

	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			shared++
		}
	}

	total := len(wordsA) + len(wordsB) - shared
	if total == 0 {
		return 0
	}

	return float64(shared) / float64(total)
}

// prefixAgreement is the ratio of positions with identical runes over the
// length of the shorter text.
func prefixAgreement(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}

	if n == 0 {
		return 0
	}

	matches := 0

	for i := 0; i < n; i++ {
		if ra[i] == rb[i] {
			matches++
		}
	}

	return float64(matches) / float64(n)
}
