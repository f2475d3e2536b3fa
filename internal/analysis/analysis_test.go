package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssqtools/predictor/internal/draw"
)

func analysisFixture() []draw.Record {
	return []draw.Record{
		{Period: "2024001", Reds: [6]int{1, 2, 3, 4, 5, 6}, Blue: 1},  // all consecutive, 3 odd
		{Period: "2024002", Reds: [6]int{1, 3, 9, 15, 21, 33}, Blue: 1}, // no consecutive, 6 odd
		{Period: "2024003", Reds: [6]int{2, 4, 10, 16, 22, 28}, Blue: 5}, // no consecutive, 0 odd
		{Period: "2024004", Reds: [6]int{1, 2, 10, 20, 30, 33}, Blue: 16}, // one consecutive pair
	}
}

func TestAnalyze_EmptyDataset(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, draw.ErrEmptyDataset)
}

func TestAnalyze_Counts(t *testing.T) {
	report, err := Analyze(analysisFixture())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Draws)
	assert.Equal(t, 3, report.RedCounts[0], "red 1 appears in three draws")
	assert.Equal(t, 3, report.RedCounts[1], "red 2 appears in three draws")
	assert.Equal(t, 0, report.RedCounts[31], "red 32 never appears")
	assert.Equal(t, 2, report.BlueCounts[0])
	assert.Equal(t, 1, report.BlueCounts[4])
	assert.Equal(t, 1, report.BlueCounts[15])

	redTotal := 0
	for _, c := range report.RedCounts {
		redTotal += c
	}
	assert.Equal(t, 4*draw.RedsPerDraw, redTotal)
}

func TestAnalyze_HotColdRanking(t *testing.T) {
	report, err := Analyze(analysisFixture())
	require.NoError(t, err)

	require.Len(t, report.HotReds, 6)
	assert.Equal(t, NumberCount{Number: 1, Count: 3}, report.HotReds[0])
	assert.Equal(t, NumberCount{Number: 2, Count: 3}, report.HotReds[1])
	// Counts of 2 come next; ties resolve to the smaller number.
	assert.Equal(t, NumberCount{Number: 3, Count: 2}, report.HotReds[2])

	require.Len(t, report.ColdReds, 6)
	assert.Equal(t, 0, report.ColdReds[0].Count)
	assert.Equal(t, 7, report.ColdReds[0].Number, "red 7 is the smallest never-drawn number")

	require.Len(t, report.HotBlues, 4)
	assert.Equal(t, NumberCount{Number: 1, Count: 2}, report.HotBlues[0])
	require.Len(t, report.ColdBlues, 4)
	assert.Equal(t, NumberCount{Number: 2, Count: 0}, report.ColdBlues[0])
}

func TestAnalyze_OddCountDistribution(t *testing.T) {
	report, err := Analyze(analysisFixture())
	require.NoError(t, err)

	assert.Equal(t, 1, report.OddCountDist[0])
	assert.Equal(t, 1, report.OddCountDist[3])
	assert.Equal(t, 1, report.OddCountDist[6])
	// {1,2,10,20,30,33} has two odd reds
	assert.Equal(t, 1, report.OddCountDist[2])
}

func TestAnalyze_SumAndSpan(t *testing.T) {
	report, err := Analyze(analysisFixture())
	require.NoError(t, err)

	// Sums: 21, 82, 82, 96
	assert.InDelta(t, (21.0+82+82+96)/4, report.RedSum.Mean, 1e-12)
	assert.Equal(t, 21.0, report.RedSum.Min)
	assert.Equal(t, 96.0, report.RedSum.Max)

	// Spans: 5, 32, 26, 32
	assert.Equal(t, 5.0, report.RedSpan.Min)
	assert.Equal(t, 32.0, report.RedSpan.Max)
	assert.Positive(t, report.RedSpan.StdDev)
}

func TestAnalyze_ConsecutiveRate(t *testing.T) {
	report, err := Analyze(analysisFixture())
	require.NoError(t, err)

	// Draws 1 and 4 contain adjacent reds.
	assert.InDelta(t, 0.5, report.ConsecutiveRate, 1e-12)
}

func TestAnalyze_SingleDraw(t *testing.T) {
	report, err := Analyze(analysisFixture()[:1])
	require.NoError(t, err)

	assert.Equal(t, 1, report.Draws)
	assert.Zero(t, report.RedSum.StdDev, "stddev of a single draw is zero")
	assert.Equal(t, 1.0, report.ConsecutiveRate)
}
