package report

import (
	"math"
	"sort"
)

// Bin is one bar of a distribution: values in [Lo, Hi), the last bin closed.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram splits [min(values), upper] into equal-width bins.
// Values above upper are left out; upper = +Inf keeps everything.
func Histogram(values []float64, bins int, upper float64) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range values {
		if v > upper {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return nil
	}
	if hi == lo {
		return []Bin{{Lo: lo, Hi: hi, Count: countAtMost(values, upper)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi
	for _, v := range values {
		if v > upper {
			continue
		}
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Percentile of unsorted values with the same interpolation as the scorer,
// in float64: used only to clip the charts.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	pos := p * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (sorted[i+1]-sorted[i])*(pos-float64(i))
}

func countAtMost(values []float64, upper float64) int {
	n := 0
	for _, v := range values {
		if v <= upper {
			n++
		}
	}
	return n
}
