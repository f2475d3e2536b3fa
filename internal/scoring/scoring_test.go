package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssqtools/predictor/internal/candidate"
	"github.com/ssqtools/predictor/internal/draw"
	"github.com/ssqtools/predictor/internal/posterior"
)

func skewedDistribution() posterior.Distribution {
	// Mass concentrated on low numbers in both pools.
	records := []draw.Record{
		{Period: "1", Reds: [6]int{1, 2, 3, 4, 5, 6}, Blue: 1},
		{Period: "2", Reds: [6]int{1, 2, 3, 4, 5, 6}, Blue: 1},
		{Period: "3", Reds: [6]int{1, 2, 3, 4, 5, 7}, Blue: 2},
	}
	dist, err := posterior.Estimate(records, posterior.DefaultOptions())
	if err != nil {
		panic(err)
	}
	return dist
}

func TestLogLikelihood_AlwaysNegative(t *testing.T) {
	dist := skewedDistribution()

	hot := candidate.Candidate{Reds: [6]int{1, 2, 3, 4, 5, 6}, Blue: 1}
	cold := candidate.Candidate{Reds: [6]int{28, 29, 30, 31, 32, 33}, Blue: 16}

	assert.Negative(t, LogLikelihood(hot, dist))
	assert.Negative(t, LogLikelihood(cold, dist))
}

func TestLogLikelihood_OrdersByProbability(t *testing.T) {
	dist := skewedDistribution()

	hot := candidate.Candidate{Reds: [6]int{1, 2, 3, 4, 5, 6}, Blue: 1}
	cold := candidate.Candidate{Reds: [6]int{28, 29, 30, 31, 32, 33}, Blue: 16}

	// The frequent combination scores closer to zero
	assert.Greater(t, LogLikelihood(hot, dist), LogLikelihood(cold, dist))
}

func TestLogLikelihood_PureFunction(t *testing.T) {
	dist := skewedDistribution()
	c := candidate.Candidate{Reds: [6]int{1, 7, 14, 22, 26, 32}, Blue: 8}

	first := LogLikelihood(c, dist)
	second := LogLikelihood(c, dist)
	require.Equal(t, first, second)
}
