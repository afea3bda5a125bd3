package calculator

import (
	"sort"

	"rfm-segments/pkg/models"

	"github.com/shopspring/decimal"
)

// QuintilePercents are the cut points of the five score tiers.
var QuintilePercents = [4]int{20, 40, 60, 80}

// Quantile returns the pct-th percentile of sorted values by linear
// interpolation between closest ranks (type 7, same as pandas/numpy default).
// The index pct*(n-1)/100 is kept exact: no float rounding at the cut points.
func Quantile(sorted []decimal.Decimal, pct int) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	pos := pct * (n - 1)
	lo, rem := pos/100, pos%100
	if rem == 0 || lo+1 >= n {
		return sorted[lo]
	}
	frac := decimal.New(int64(rem), -2)
	return sorted[lo].Add(sorted[lo+1].Sub(sorted[lo]).Mul(frac))
}

// ComputeBoundaries derives the quintile cut points of each metric over the
// whole population.
func ComputeBoundaries(metrics []models.CustomerMetrics) (models.QuintileBoundaries, error) {
	var b models.QuintileBoundaries
	if len(metrics) == 0 {
		return b, &models.EmptyDatasetError{Stage: "score"}
	}

	recency := make([]decimal.Decimal, len(metrics))
	frequency := make([]decimal.Decimal, len(metrics))
	monetary := make([]decimal.Decimal, len(metrics))
	for i, m := range metrics {
		recency[i] = decimal.NewFromInt(int64(m.RecencyDays))
		frequency[i] = decimal.NewFromInt(int64(m.Frequency))
		monetary[i] = m.Monetary
	}

	b.Recency = quintiles(recency)
	b.Frequency = quintiles(frequency)
	b.Monetary = quintiles(monetary)
	return b, nil
}

func quintiles(values []decimal.Decimal) [4]decimal.Decimal {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	var out [4]decimal.Decimal
	for i, pct := range QuintilePercents {
		out[i] = Quantile(values, pct)
	}
	return out
}

// RecencyScore is inverted: the more recent, the higher. A value equal to a
// cut point takes that cut point's score.
func RecencyScore(v decimal.Decimal, cuts [4]decimal.Decimal) int {
	return 6 - DirectScore(v, cuts)
}

// DirectScore maps v to 1..5, higher values scoring higher.
func DirectScore(v decimal.Decimal, cuts [4]decimal.Decimal) int {
	for i, c := range cuts {
		if v.LessThanOrEqual(c) {
			return i + 1
		}
	}
	return 5
}

// ScoreCustomer applies the boundaries to a single customer.
func ScoreCustomer(m models.CustomerMetrics, b models.QuintileBoundaries) models.ScoredCustomer {
	r := RecencyScore(decimal.NewFromInt(int64(m.RecencyDays)), b.Recency)
	f := DirectScore(decimal.NewFromInt(int64(m.Frequency)), b.Frequency)
	mon := DirectScore(m.Monetary, b.Monetary)
	segment, score := Compose(r, f, mon)
	return models.ScoredCustomer{
		CustomerMetrics: m,
		R:               r,
		F:               f,
		M:               mon,
		Segment:         segment,
		Score:           score,
	}
}

// Score scores every customer against the same boundaries.
func Score(metrics []models.CustomerMetrics, b models.QuintileBoundaries) []models.ScoredCustomer {
	out := make([]models.ScoredCustomer, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, ScoreCustomer(m, b))
	}
	return out
}
