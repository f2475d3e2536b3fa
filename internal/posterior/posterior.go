// Package posterior turns the historical draw records into smoothed per-number
// probability estimates for the red and blue pools. The two pools are
// estimated independently; there is no cross-pool conditioning.
package posterior

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ssqtools/predictor/internal/draw"
)

// Options control the estimation. The zero value of Recent and Decay means
// "use all draws, equally weighted", which is the baseline behavior.
type Options struct {
	AlphaRed  float64 // symmetric Dirichlet prior for the red pool, must be > 0
	AlphaBlue float64 // symmetric Dirichlet prior for the blue pool, must be > 0
	Recent    int     // keep only the last N draws when > 0
	Decay     float64 // exponential age weight g in (0,1]; newest draw weighs most
}

// DefaultAlpha is add-one (Laplace) smoothing. It guarantees every number a
// strictly positive probability, which keeps log-likelihoods finite even for
// numbers that never appeared historically.
const DefaultAlpha = 1.0

// DefaultOptions returns the baseline estimation settings.
func DefaultOptions() Options {
	return Options{AlphaRed: DefaultAlpha, AlphaBlue: DefaultAlpha}
}

// Distribution holds the posterior mean probability per number. Index i maps
// to number i+1. Each array sums to 1 and every entry is strictly positive.
type Distribution struct {
	Red  [draw.RedPoolSize]float64
	Blue [draw.BluePoolSize]float64
}

// Estimate computes the Dirichlet posterior mean over the historical counts:
// p(n) = (c(n) + alpha) / (sum_m c(m) + K*alpha). Counts become weighted sums
// when a recency window or decay weighting is configured.
func Estimate(records []draw.Record, opts Options) (Distribution, error) {
	if len(records) == 0 {
		return Distribution{}, draw.ErrEmptyDataset
	}
	if opts.AlphaRed <= 0 || opts.AlphaBlue <= 0 {
		return Distribution{}, fmt.Errorf("smoothing alpha must be positive (red %g, blue %g)", opts.AlphaRed, opts.AlphaBlue)
	}
	if opts.Decay != 0 && (opts.Decay <= 0 || opts.Decay > 1) {
		return Distribution{}, fmt.Errorf("decay must be in (0,1], got %g", opts.Decay)
	}

	// Records arrive oldest-first; the recency window keeps the tail.
	used := records
	if opts.Recent > 0 && opts.Recent < len(used) {
		used = used[len(used)-opts.Recent:]
	}

	weights := buildWeights(len(used), opts.Decay)

	var redCounts [draw.RedPoolSize]float64
	var blueCounts [draw.BluePoolSize]float64
	for i, rec := range used {
		w := weights[i]
		for _, n := range rec.Reds {
			redCounts[n-1] += w
		}
		blueCounts[rec.Blue-1] += w
	}

	var dist Distribution
	posteriorMean(redCounts[:], opts.AlphaRed, dist.Red[:])
	posteriorMean(blueCounts[:], opts.AlphaBlue, dist.Blue[:])

	return dist, nil
}

// buildWeights produces the per-draw weight g^(n-1-i) so the newest draw gets
// weight 1. A zero decay means equal weighting.
func buildWeights(n int, decay float64) []float64 {
	weights := make([]float64, n)
	if decay == 0 || decay == 1 {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}
	for i := range weights {
		weights[i] = math.Pow(decay, float64(n-1-i))
	}
	return weights
}

// posteriorMean fills out with (count+alpha)/(total+K*alpha).
func posteriorMean(counts []float64, alpha float64, out []float64) {
	total := floats.Sum(counts) + alpha*float64(len(counts))
	for i, c := range counts {
		out[i] = (c + alpha) / total
	}
}
