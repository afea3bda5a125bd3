package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"rfm-segments/pkg/models"
)

const (
	histogramBins  = 20
	clipPercentile = 0.95
	barWidth       = 40
)

// SegmentCount is the number of customers sharing a segment label.
type SegmentCount struct {
	Segment string `json:"segment"`
	Count   int    `json:"count"`
}

// Summary is the reporting view of one run.
type Summary struct {
	Customers int            `json:"customers"`
	Groups    map[string]int `json:"groups"`
	Segments  []SegmentCount `json:"segments"` // most populated first
	Recency   []Bin          `json:"recency"`
	Frequency []Bin          `json:"frequency"` // clipped at the 95th percentile
	Monetary  []Bin          `json:"monetary"`  // clipped at the 95th percentile
}

// Summarize counts groups and segments and bins the three distributions.
func Summarize(res *models.Result) Summary {
	s := Summary{
		Customers: len(res.Customers),
		Groups:    make(map[string]int, len(Groups)),
	}

	recency := make([]float64, 0, len(res.Customers))
	frequency := make([]float64, 0, len(res.Customers))
	monetary := make([]float64, 0, len(res.Customers))
	bySegment := map[string]int{}
	for _, c := range res.Customers {
		s.Groups[Classify(c)]++
		bySegment[c.Segment]++
		recency = append(recency, float64(c.RecencyDays))
		frequency = append(frequency, float64(c.Frequency))
		monetary = append(monetary, c.Monetary.InexactFloat64())
	}

	for seg, n := range bySegment {
		s.Segments = append(s.Segments, SegmentCount{Segment: seg, Count: n})
	}
	sort.Slice(s.Segments, func(i, j int) bool {
		if s.Segments[i].Count != s.Segments[j].Count {
			return s.Segments[i].Count > s.Segments[j].Count
		}
		return s.Segments[i].Segment > s.Segments[j].Segment
	})

	s.Recency = Histogram(recency, histogramBins, math.Inf(1))
	s.Frequency = Histogram(frequency, histogramBins, Percentile(frequency, clipPercentile))
	s.Monetary = Histogram(monetary, histogramBins, Percentile(monetary, clipPercentile))
	return s
}

// WriteSummary renders s as text: groups, the top segments and the three
// distributions as horizontal bars.
func WriteSummary(w io.Writer, s Summary, top int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Customers: %d\n\n", s.Customers)
	b.WriteString("Groups\n")
	for _, g := range Groups {
		fmt.Fprintf(&b, "  %-12s %6d\n", g, s.Groups[g])
	}

	b.WriteString("\nTop segments (RFM)\n")
	for i, sc := range s.Segments {
		if i >= top {
			break
		}
		fmt.Fprintf(&b, "  %s %6d\n", sc.Segment, sc.Count)
	}

	writeDistribution(&b, "Distribution of Recency", s.Recency)
	writeDistribution(&b, "Distribution of Frequency", s.Frequency)
	writeDistribution(&b, "Distribution of Monetary", s.Monetary)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDistribution(b *strings.Builder, title string, bins []Bin) {
	fmt.Fprintf(b, "\n%s\n", title)
	peak := 0
	for _, bin := range bins {
		peak = max(peak, bin.Count)
	}
	for _, bin := range bins {
		n := 0
		if peak > 0 {
			n = bin.Count * barWidth / peak
		}
		fmt.Fprintf(b, "  %10.2f - %-10.2f %6d %s\n", bin.Lo, bin.Hi, bin.Count, strings.Repeat("#", n))
	}
}
