// Package backtest pits number-picking strategies against simulated official
// draws and tallies prize-tier hits. Official draws are uniform by regulation,
// so this exists to demonstrate that no strategy beats random in the long run,
// not to find one that does. Results live in memory only.
package backtest

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ssqtools/predictor/internal/draw"
	"github.com/ssqtools/predictor/internal/posterior"
)

// Tier is an official prize tier, 1 (jackpot) through 6. TierNone means the
// ticket won nothing.
type Tier int

// TierNone marks a losing ticket.
const TierNone Tier = 0

// NumTiers is the count of winning tiers.
const NumTiers = 6

// JudgeTier applies the published prize rules to a ticket against a draw:
//
//	tier 1: 6 reds + blue      tier 4: 5 reds, or 4 reds + blue
//	tier 2: 6 reds             tier 5: 4 reds, or 3 reds + blue
//	tier 3: 5 reds + blue      tier 6: blue with at most 2 reds
func JudgeTier(reds [6]int, blue int, result draw.Record) Tier {
	var drawn [draw.RedPoolSize + 1]bool
	for _, n := range result.Reds {
		drawn[n] = true
	}

	redHits := 0
	for _, n := range reds {
		if drawn[n] {
			redHits++
		}
	}
	blueHit := blue == result.Blue

	switch {
	case redHits == 6 && blueHit:
		return 1
	case redHits == 6:
		return 2
	case redHits == 5 && blueHit:
		return 3
	case redHits == 5 || (redHits == 4 && blueHit):
		return 4
	case redHits == 4 || (redHits == 3 && blueHit):
		return 5
	case blueHit:
		return 6
	}
	return TierNone
}

// Strategy picks one ticket per simulated period.
type Strategy interface {
	Name() string
	Pick(rng *rand.Rand) (reds [6]int, blue int)
}

// Options configure a simulation run.
type Options struct {
	Periods int   // number of simulated draws
	Seed    int64 // master seed; each strategy derives its own stream from it
}

// StrategyResult tallies one strategy's hits. Tiers is indexed by Tier, with
// index 0 unused.
type StrategyResult struct {
	Name  string
	Tiers [NumTiers + 1]int
}

// HitRate returns the fraction of periods that won any tier.
func (r StrategyResult) HitRate(periods int) float64 {
	hits := 0
	for t := 1; t <= NumTiers; t++ {
		hits += r.Tiers[t]
	}
	return float64(hits) / float64(periods)
}

// Run simulates opts.Periods official draws and judges one ticket per
// strategy per period. The official draws use a generator seeded from
// opts.Seed and each strategy gets its own derived generator, so adding or
// reordering strategies never changes another strategy's picks.
func Run(opts Options, strategies []Strategy) ([]StrategyResult, error) {
	if opts.Periods <= 0 {
		return nil, fmt.Errorf("backtest needs at least one period, got %d", opts.Periods)
	}
	if len(strategies) == 0 {
		return nil, fmt.Errorf("backtest needs at least one strategy")
	}

	official := rand.New(rand.NewSource(opts.Seed))
	strategyRNGs := make([]*rand.Rand, len(strategies))
	for i := range strategies {
		strategyRNGs[i] = rand.New(rand.NewSource(opts.Seed + int64(i) + 1))
	}

	results := make([]StrategyResult, len(strategies))
	for i, s := range strategies {
		results[i].Name = s.Name()
	}

	for p := 0; p < opts.Periods; p++ {
		result := officialDraw(official)
		for i, s := range strategies {
			reds, blue := s.Pick(strategyRNGs[i])
			if tier := JudgeTier(reds, blue, result); tier != TierNone {
				results[i].Tiers[tier]++
			}
		}
	}

	return results, nil
}

// officialDraw generates one uniform draw: 6 distinct reds plus 1 blue.
func officialDraw(rng *rand.Rand) draw.Record {
	perm := rng.Perm(draw.RedPoolSize)

	var rec draw.Record
	for i := 0; i < draw.RedsPerDraw; i++ {
		rec.Reds[i] = perm[i] + 1
	}
	sort.Ints(rec.Reds[:])
	rec.Blue = rng.Intn(draw.BluePoolSize) + 1
	return rec
}

// ---------------------------------------------------------------------------
// Strategies
// ---------------------------------------------------------------------------

type randomStrategy struct{}

// NewRandomStrategy picks uniformly, the baseline every other strategy is
// measured against.
func NewRandomStrategy() Strategy { return randomStrategy{} }

func (randomStrategy) Name() string { return "random" }

func (randomStrategy) Pick(rng *rand.Rand) ([6]int, int) {
	rec := officialDraw(rng)
	return rec.Reds, rec.Blue
}

type hotColdStrategy struct {
	redWeights  []float64
	blueWeights []float64
}

// NewHotColdStrategy weights numbers by historical frequency plus one, so
// never-seen numbers stay drawable.
func NewHotColdStrategy(redCounts [draw.RedPoolSize]int, blueCounts [draw.BluePoolSize]int) Strategy {
	s := &hotColdStrategy{
		redWeights:  make([]float64, draw.RedPoolSize),
		blueWeights: make([]float64, draw.BluePoolSize),
	}
	for i, c := range redCounts {
		s.redWeights[i] = float64(c) + 1
	}
	for i, c := range blueCounts {
		s.blueWeights[i] = float64(c) + 1
	}
	return s
}

func (*hotColdStrategy) Name() string { return "hotcold" }

func (s *hotColdStrategy) Pick(rng *rand.Rand) ([6]int, int) {
	return weightedTicket(s.redWeights, s.blueWeights, rng)
}

type oddEvenStrategy struct{}

// NewOddEvenStrategy always plays three odd and three even reds.
func NewOddEvenStrategy() Strategy { return oddEvenStrategy{} }

func (oddEvenStrategy) Name() string { return "oddeven" }

func (oddEvenStrategy) Pick(rng *rand.Rand) ([6]int, int) {
	odds := make([]int, 0, 17)
	evens := make([]int, 0, 16)
	for n := 1; n <= draw.RedPoolSize; n++ {
		if n%2 == 1 {
			odds = append(odds, n)
		} else {
			evens = append(evens, n)
		}
	}

	var reds [6]int
	oddPerm := rng.Perm(len(odds))
	evenPerm := rng.Perm(len(evens))
	for i := 0; i < 3; i++ {
		reds[i] = odds[oddPerm[i]]
		reds[i+3] = evens[evenPerm[i]]
	}
	sort.Ints(reds[:])

	return reds, rng.Intn(draw.BluePoolSize) + 1
}

type posteriorStrategy struct {
	redWeights  []float64
	blueWeights []float64
}

// NewPosteriorStrategy samples tickets from the smoothed posterior, the same
// weighting the prediction pipeline uses.
func NewPosteriorStrategy(dist posterior.Distribution) Strategy {
	s := &posteriorStrategy{
		redWeights:  make([]float64, draw.RedPoolSize),
		blueWeights: make([]float64, draw.BluePoolSize),
	}
	copy(s.redWeights, dist.Red[:])
	copy(s.blueWeights, dist.Blue[:])
	return s
}

func (*posteriorStrategy) Name() string { return "posterior" }

func (s *posteriorStrategy) Pick(rng *rand.Rand) ([6]int, int) {
	return weightedTicket(s.redWeights, s.blueWeights, rng)
}

// weightedTicket draws 6 distinct reds without replacement and 1 blue, both
// proportional to the given weights.
func weightedTicket(redWeights, blueWeights []float64, rng *rand.Rand) ([6]int, int) {
	remaining := make([]float64, len(redWeights))
	copy(remaining, redWeights)
	total := 0.0
	for _, w := range remaining {
		total += w
	}

	var reds [6]int
	for k := 0; k < draw.RedsPerDraw; k++ {
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
			for i := len(remaining) - 1; i >= 0; i-- {
				if remaining[i] > 0 {
					picked = i
					break
				}
			}
		}
		reds[k] = picked + 1
		total -= remaining[picked]
		remaining[picked] = 0
	}
	sort.Ints(reds[:])

	blueTotal := 0.0
	for _, w := range blueWeights {
		blueTotal += w
	}
	u := rng.Float64() * blueTotal
	cum := 0.0
	blue := len(blueWeights)
	for i, w := range blueWeights {
		cum += w
		if u < cum {
			blue = i + 1
			break
		}
	}

	return reds, blue
}
