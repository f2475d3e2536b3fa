// Package scoring rates a candidate's intrinsic quality independently of any
// other candidate.
package scoring

import (
	"math"

	"github.com/ssqtools/predictor/internal/candidate"
	"github.com/ssqtools/predictor/internal/posterior"
)

// LogLikelihood sums the log posterior probability of the candidate's six
// reds and one blue. Every probability is strictly positive and below one by
// construction, so the result is always a finite negative number; combinations
// the history favors score closer to zero.
func LogLikelihood(c candidate.Candidate, dist posterior.Distribution) float64 {
	ll := 0.0
	for _, n := range c.Reds {
		ll += math.Log(dist.Red[n-1])
	}
	ll += math.Log(dist.Blue[c.Blue-1])
	return ll
}
