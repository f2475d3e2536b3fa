// Package main is the entry point for the SSQ predictor CLI. It loads the
// historical double color ball draws, estimates per-number posteriors, and
// produces candidate plays through deterministic top selection, seeded
// weighted sampling, and competitive re-bargaining.
//
// Draws are independent uniform events by regulation; the output is an
// exploratory heuristic suggestion, never a claim of improved odds.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
