// Package analysis computes descriptive statistics over the historical draws:
// per-number frequencies, hot/cold rankings, odd/even balance, red-sum and
// span distributions, and the consecutive-pair rate. All functions are pure
// over the loaded records.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ssqtools/predictor/internal/draw"
)

// NumberCount pairs a ball number with how often it appeared.
type NumberCount struct {
	Number int
	Count  int
}

// DistStats summarizes a per-draw numeric series.
type DistStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Report is the full analysis output for one dataset.
type Report struct {
	Draws int

	RedCounts  [draw.RedPoolSize]int
	BlueCounts [draw.BluePoolSize]int

	HotReds   []NumberCount // most frequent reds, descending
	ColdReds  []NumberCount // least frequent reds, ascending
	HotBlues  []NumberCount
	ColdBlues []NumberCount

	// OddCountDist[k] = number of draws whose six reds contained exactly k
	// odd numbers.
	OddCountDist [draw.RedsPerDraw + 1]int

	RedSum  DistStats // sum of the six reds per draw
	RedSpan DistStats // max red minus min red per draw

	// ConsecutiveRate is the fraction of draws containing at least one pair
	// of adjacent red numbers.
	ConsecutiveRate float64
}

// Analyze builds the report. It fails only on an empty dataset.
func Analyze(records []draw.Record) (*Report, error) {
	if len(records) == 0 {
		return nil, draw.ErrEmptyDataset
	}

	r := &Report{Draws: len(records)}

	sums := make([]float64, 0, len(records))
	spans := make([]float64, 0, len(records))
	consecutive := 0

	for _, rec := range records {
		odd := 0
		sum := 0
		hasConsecutive := false

		for i, n := range rec.Reds {
			r.RedCounts[n-1]++
			sum += n
			if n%2 == 1 {
				odd++
			}
			// Reds are sorted ascending, so adjacency is a neighbor check.
			if i > 0 && n == rec.Reds[i-1]+1 {
				hasConsecutive = true
			}
		}
		r.BlueCounts[rec.Blue-1]++

		r.OddCountDist[odd]++
		sums = append(sums, float64(sum))
		spans = append(spans, float64(rec.Reds[draw.RedsPerDraw-1]-rec.Reds[0]))
		if hasConsecutive {
			consecutive++
		}
	}

	r.RedSum = summarize(sums)
	r.RedSpan = summarize(spans)
	r.ConsecutiveRate = float64(consecutive) / float64(len(records))

	const topK = 6
	r.HotReds, r.ColdReds = rank(r.RedCounts[:], topK)
	r.HotBlues, r.ColdBlues = rank(r.BlueCounts[:], 4)

	return r, nil
}

// summarize computes mean/stddev/min/max of a series.
func summarize(values []float64) DistStats {
	s := DistStats{
		Mean: stat.Mean(values, nil),
		Min:  values[0],
		Max:  values[0],
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// rank returns the k most and k least frequent numbers. Ties resolve to the
// smaller number so the ranking is stable across runs.
func rank(counts []int, k int) (hot, cold []NumberCount) {
	all := make([]NumberCount, len(counts))
	for i, c := range counts {
		all[i] = NumberCount{Number: i + 1, Count: c}
	}

	byCountDesc := make([]NumberCount, len(all))
	copy(byCountDesc, all)
	sort.SliceStable(byCountDesc, func(a, b int) bool {
		if byCountDesc[a].Count != byCountDesc[b].Count {
			return byCountDesc[a].Count > byCountDesc[b].Count
		}
		return byCountDesc[a].Number < byCountDesc[b].Number
	})

	byCountAsc := make([]NumberCount, len(all))
	copy(byCountAsc, all)
	sort.SliceStable(byCountAsc, func(a, b int) bool {
		if byCountAsc[a].Count != byCountAsc[b].Count {
			return byCountAsc[a].Count < byCountAsc[b].Count
		}
		return byCountAsc[a].Number < byCountAsc[b].Number
	})

	if k > len(all) {
		k = len(all)
	}
	return byCountDesc[:k], byCountAsc[:k]
}
