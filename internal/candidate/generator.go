package candidate

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ssqtools/predictor/internal/draw"
	"github.com/ssqtools/predictor/internal/posterior"
)

// DefaultSeed keeps sampling reproducible when the caller does not choose one.
const DefaultSeed int64 = 42

// Top deterministically picks the six highest-probability reds and the single
// highest-probability blue. Exact probability ties resolve to the smaller
// number, so the same posterior always yields the same candidate.
func Top(dist posterior.Distribution) Candidate {
	reds := topK(dist.Red[:], draw.RedsPerDraw)
	blue := topK(dist.Blue[:], 1)[0]

	var c Candidate
	copy(c.Reds[:], reds)
	sort.Ints(c.Reds[:])
	c.Blue = blue
	c.Tag = TagTop
	return c
}

// topK returns the k numbers (1-based) with the highest probabilities,
// breaking ties toward the smaller number.
func topK(probs []float64, k int) []int {
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if probs[order[a]] != probs[order[b]] {
			return probs[order[a]] > probs[order[b]]
		}
		return order[a] < order[b]
	})

	numbers := make([]int, k)
	for i := 0; i < k; i++ {
		numbers[i] = order[i] + 1
	}
	return numbers
}

// Sample generates count candidates by weighted sampling. A single generator
// seeded once from seed drives all randomness, and every candidate consumes a
// fixed seven draws from it (six reds without replacement, one blue), so the
// same seed and count always reproduce the same sequence and unrelated
// parameters never perturb the stream.
//
// Temperature reshapes the weights as p^(1/t) before sampling: t < 1 sharpens
// toward the top numbers, t > 1 flattens toward uniform. t = 1 uses the
// posterior weights untouched.
func Sample(dist posterior.Distribution, count int, seed int64, temperature float64) []Candidate {
	if temperature <= 0 {
		temperature = 1
	}

	redWeights := applyTemperature(dist.Red[:], temperature)
	blueWeights := applyTemperature(dist.Blue[:], temperature)

	rng := rand.New(rand.NewSource(seed))

	candidates := make([]Candidate, 0, count)
	for k := 1; k <= count; k++ {
		var c Candidate
		reds := sampleWithoutReplacement(redWeights, draw.RedsPerDraw, rng)
		copy(c.Reds[:], reds)
		sort.Ints(c.Reds[:])
		c.Blue = sampleOne(blueWeights, rng)
		c.Tag = SampleTag(k)
		candidates = append(candidates, c)
	}

	return candidates
}

// applyTemperature returns a weight vector proportional to p^(1/t). The
// sampler renormalizes over the remaining set on every pick, so the vector
// itself does not need to sum to one.
func applyTemperature(probs []float64, temperature float64) []float64 {
	weights := make([]float64, len(probs))
	if temperature == 1 {
		copy(weights, probs)
		return weights
	}
	inv := 1 / temperature
	for i, p := range probs {
		weights[i] = math.Pow(p, inv)
	}
	return weights
}

// sampleWithoutReplacement draws k distinct numbers with probability
// proportional to their remaining weight, renormalizing over the shrinking
// set. Each pick consumes exactly one rng.Float64: u is scaled by the current
// total weight and located by a cumulative walk, matching sequential
// reweighted draws exactly.
func sampleWithoutReplacement(weights []float64, k int, rng *rand.Rand) []int {
	remaining := make([]float64, len(weights))
	copy(remaining, weights)

	total := 0.0
	for _, w := range remaining {
		total += w
	}

	chosen := make([]int, 0, k)
	for len(chosen) < k {
		u := rng.Float64() * total
		cum := 0.0
		picked := -1
		for i, w := range remaining {
			if w == 0 {
				continue
			}
			cum += w
			if u < cum {
				picked = i
				break
			}
		}
		if picked < 0 {
			// Float64 rounding can leave u a hair past the last cumulative
			// step; the last number still in play is the correct pick.
			for i := len(remaining) - 1; i >= 0; i-- {
				if remaining[i] > 0 {
					picked = i
					break
				}
			}
		}

		chosen = append(chosen, picked+1)
		total -= remaining[picked]
		remaining[picked] = 0
	}

	return chosen
}

// sampleOne draws a single number by weight, consuming exactly one rng value.
func sampleOne(weights []float64, rng *rand.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	u := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if u < cum {
			return i + 1
		}
	}
	return len(weights)
}
