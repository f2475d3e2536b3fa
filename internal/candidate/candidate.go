// Package candidate builds proposed plays from a posterior distribution,
// either deterministically (the six most probable reds plus the most probable
// blue) or by seeded weighted sampling without replacement.
package candidate

import (
	"fmt"
	"strings"

	"github.com/ssqtools/predictor/internal/draw"
)

// TagTop marks the deterministic top candidate. Sampled candidates are tagged
// sample#1, sample#2, ... in generation order.
const TagTop = "top"

// Candidate is one proposed play. LogLikelihood is attached by the scorer;
// Utility and EliminatedRound are maintained by the competitive selector and
// frozen once the candidate is eliminated or declared the winner.
type Candidate struct {
	Reds [6]int
	Blue int
	Tag  string

	LogLikelihood   float64
	Utility         float64
	EliminatedRound int // 0 while still active
}

// String renders the play with ascending two-digit reds, e.g.
// "01 07 14 22 26 32 | blue 08". External tooling depends on this shape.
func (c Candidate) String() string {
	parts := make([]string, 0, draw.RedsPerDraw)
	for _, n := range c.Reds {
		parts = append(parts, fmt.Sprintf("%02d", n))
	}
	return fmt.Sprintf("%s | blue %02d", strings.Join(parts, " "), c.Blue)
}

// SampleTag returns the provenance tag for the k-th sampled candidate
// (1-based).
func SampleTag(k int) string {
	return fmt.Sprintf("sample#%d", k)
}
