package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssqtools/predictor/internal/draw"
	"github.com/ssqtools/predictor/internal/posterior"
)

// countDistribution builds a posterior the way the estimator would from raw
// counts with add-one smoothing.
func countDistribution(redCounts map[int]float64, blueCounts map[int]float64) posterior.Distribution {
	var dist posterior.Distribution

	redTotal := 33.0
	for _, c := range redCounts {
		redTotal += c
	}
	for n := 1; n <= draw.RedPoolSize; n++ {
		dist.Red[n-1] = (redCounts[n] + 1) / redTotal
	}

	blueTotal := 16.0
	for _, c := range blueCounts {
		blueTotal += c
	}
	for n := 1; n <= draw.BluePoolSize; n++ {
		dist.Blue[n-1] = (blueCounts[n] + 1) / blueTotal
	}

	return dist
}

func TestTop_PicksHighestCounts(t *testing.T) {
	// Descending counts: number 1 hottest, then 2, and so on.
	dist := countDistribution(
		map[int]float64{1: 50, 2: 48, 3: 46, 7: 44, 14: 42, 22: 40, 30: 10},
		map[int]float64{9: 30, 3: 10},
	)

	c := Top(dist)

	assert.Equal(t, [6]int{1, 2, 3, 7, 14, 22}, c.Reds, "six highest-count reds, ascending")
	assert.Equal(t, 9, c.Blue, "highest-count blue")
	assert.Equal(t, TagTop, c.Tag)
}

func TestTop_Deterministic(t *testing.T) {
	dist := countDistribution(map[int]float64{5: 10, 17: 9, 23: 8}, map[int]float64{12: 5})

	first := Top(dist)
	second := Top(dist)
	assert.Equal(t, first, second)
}

func TestTop_TieBreaksTowardSmallerNumber(t *testing.T) {
	// Uniform posterior: every number ties, so the smallest win.
	var dist posterior.Distribution
	for i := range dist.Red {
		dist.Red[i] = 1.0 / 33.0
	}
	for i := range dist.Blue {
		dist.Blue[i] = 1.0 / 16.0
	}

	c := Top(dist)
	assert.Equal(t, [6]int{1, 2, 3, 4, 5, 6}, c.Reds)
	assert.Equal(t, 1, c.Blue)
}

func TestSample_ReproducibleForSameSeed(t *testing.T) {
	dist := countDistribution(map[int]float64{1: 20, 8: 15, 15: 10, 33: 5}, map[int]float64{4: 10})

	first := Sample(dist, 6, 42, 1.0)
	second := Sample(dist, 6, 42, 1.0)
	assert.Equal(t, first, second, "same seed and count must reproduce the exact sequence")
}

func TestSample_Seed42LiteralSequence(t *testing.T) {
	// Pins the exact candidate sequence for the default seed over a fixed
	// posterior. Any change to the sampling walk, the rng consumption order,
	// or the weight preparation shows up here as a diff, not just as
	// "still deterministic".
	dist := countDistribution(
		map[int]float64{1: 50, 2: 48, 3: 46, 7: 44, 14: 42, 22: 40, 30: 10},
		map[int]float64{9: 30, 3: 10},
	)

	want := []string{
		"01 02 03 07 14 22 | blue 09",
		"01 02 03 05 14 22 | blue 03",
		"03 14 19 20 26 30 | blue 03",
		"01 02 03 07 22 30 | blue 03",
		"02 03 07 22 29 33 | blue 03",
		"01 03 07 14 22 30 | blue 09",
	}

	got := Sample(dist, 6, DefaultSeed, 1.0)
	require.Len(t, got, len(want))
	for i, c := range got {
		assert.Equal(t, want[i], c.String(), "candidate %d", i+1)
		assert.Equal(t, SampleTag(i+1), c.Tag)
	}
}

func TestSample_DifferentSeedDiffers(t *testing.T) {
	dist := countDistribution(map[int]float64{1: 20, 8: 15, 15: 10, 33: 5}, map[int]float64{4: 10})

	first := Sample(dist, 6, 42, 1.0)
	second := Sample(dist, 6, 43, 1.0)
	assert.NotEqual(t, first, second)
}

func TestSample_FixedStreamConsumption(t *testing.T) {
	// Each candidate consumes exactly seven generator values, so asking for
	// more candidates must not change the ones already generated.
	dist := countDistribution(map[int]float64{2: 12, 9: 9, 27: 6}, map[int]float64{7: 8})

	short := Sample(dist, 2, 42, 1.0)
	long := Sample(dist, 6, 42, 1.0)
	assert.Equal(t, short, long[:2])
}

func TestSample_CandidatesAreValid(t *testing.T) {
	dist := countDistribution(map[int]float64{1: 30, 2: 1, 31: 14}, map[int]float64{16: 20})

	candidates := Sample(dist, 10, 7, 1.0)
	require.Len(t, candidates, 10)

	for k, c := range candidates {
		assert.Equal(t, SampleTag(k+1), c.Tag)

		seen := make(map[int]bool)
		prev := 0
		for _, n := range c.Reds {
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, draw.RedPoolSize)
			assert.False(t, seen[n], "red numbers must be distinct")
			assert.Greater(t, n, prev, "red numbers must be ascending")
			seen[n] = true
			prev = n
		}
		assert.GreaterOrEqual(t, c.Blue, 1)
		assert.LessOrEqual(t, c.Blue, draw.BluePoolSize)
	}
}

func TestSample_TemperatureOneMatchesRawWeights(t *testing.T) {
	dist := countDistribution(map[int]float64{3: 25, 11: 5}, map[int]float64{2: 9})

	raw := Sample(dist, 4, 42, 1.0)
	explicit := Sample(dist, 4, 42, 0) // non-positive falls back to 1
	assert.Equal(t, raw, explicit)
}

func TestCandidate_String(t *testing.T) {
	c := Candidate{Reds: [6]int{1, 5, 7, 14, 22, 33}, Blue: 8}
	assert.Equal(t, "01 05 07 14 22 33 | blue 08", c.String())
}
