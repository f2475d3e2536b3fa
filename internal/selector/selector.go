// Package selector runs the competitive re-bargaining round: given the top
// candidate plus the sampled candidates, it repeatedly eliminates the weakest
// play until one remains, trading raw likelihood against redundancy with the
// candidates still in the game.
package selector

import (
	"errors"

	"github.com/ssqtools/predictor/internal/candidate"
	"github.com/ssqtools/predictor/internal/draw"
	"github.com/ssqtools/predictor/internal/posterior"
	"github.com/ssqtools/predictor/internal/scoring"
)

// ErrEmptyPool means the selector was invoked without candidates. That is a
// defect in the caller, not a data problem: the pipeline always seeds the pool
// with the top candidate before selecting.
var ErrEmptyPool = errors.New("selector invoked on empty candidate pool")

// DefaultBeta is the overlap penalty weight when no preset overrides it.
const DefaultBeta = 0.5

// Round records one elimination for auditing: which candidate went out, at
// what adjusted utility, and what every then-active candidate scored.
type Round struct {
	Number            int
	EliminatedTag     string
	EliminatedUtility float64
	Utilities         map[string]float64
}

// Result is the selector's outcome. Score is the winner's adjusted utility
// from the round it became sole survivor; with no opponents left the overlap
// penalty is zero, so it equals the winner's raw log-likelihood.
type Result struct {
	Winner candidate.Candidate
	Score  float64
	Rounds []Round
}

// Select eliminates candidates until one remains. Each round recomputes
//
//	U(i) = logLikelihood(i) - beta * sum_{j active, j != i} |reds(i) ∩ reds(j)|
//
// over the active pool only, then removes the minimum-U candidate. Exact ties
// eliminate the candidate with the larger generation index, so the top
// candidate (index 0) never loses a tie and the procedure is deterministic
// for a fixed input order. The blue number does not count toward overlap.
func Select(pool []candidate.Candidate, dist posterior.Distribution, beta float64) (Result, error) {
	if len(pool) == 0 {
		return Result{}, ErrEmptyPool
	}

	cands := make([]candidate.Candidate, len(pool))
	copy(cands, pool)
	for i := range cands {
		cands[i].LogLikelihood = scoring.LogLikelihood(cands[i], dist)
		cands[i].EliminatedRound = 0
	}

	active := make([]int, len(cands))
	for i := range active {
		active[i] = i
	}

	var rounds []Round
	for round := 1; ; round++ {
		utilities := make(map[string]float64, len(active))
		for _, i := range active {
			u := cands[i].LogLikelihood - beta*float64(overlapPenalty(cands, active, i))
			cands[i].Utility = u
			utilities[cands[i].Tag] = u
		}

		if len(active) == 1 {
			winner := cands[active[0]]
			return Result{Winner: winner, Score: winner.Utility, Rounds: rounds}, nil
		}

		// Minimum utility goes out; on an exact tie the later-generated
		// candidate loses.
		loser := active[0]
		for _, i := range active[1:] {
			if cands[i].Utility < cands[loser].Utility ||
				(cands[i].Utility == cands[loser].Utility && i > loser) {
				loser = i
			}
		}

		cands[loser].EliminatedRound = round
		rounds = append(rounds, Round{
			Number:            round,
			EliminatedTag:     cands[loser].Tag,
			EliminatedUtility: cands[loser].Utility,
			Utilities:         utilities,
		})

		survivors := active[:0]
		for _, i := range active {
			if i != loser {
				survivors = append(survivors, i)
			}
		}
		active = survivors
	}
}

// overlapPenalty counts the red numbers candidate i shares with every other
// active candidate. Two identical red sets contribute the full six.
func overlapPenalty(cands []candidate.Candidate, active []int, i int) int {
	var mine [draw.RedPoolSize + 1]bool
	for _, n := range cands[i].Reds {
		mine[n] = true
	}

	penalty := 0
	for _, j := range active {
		if j == i {
			continue
		}
		for _, n := range cands[j].Reds {
			if mine[n] {
				penalty++
			}
		}
	}
	return penalty
}
