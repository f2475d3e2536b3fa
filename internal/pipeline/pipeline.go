// Package pipeline wires the run end to end: posterior estimation, candidate
// generation, utility scoring and competitive selection. Each invocation
// builds everything from scratch and owns its RNG, so concurrent runs with
// different seeds or presets never share state.
package pipeline

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ssqtools/predictor/internal/candidate"
	"github.com/ssqtools/predictor/internal/config"
	"github.com/ssqtools/predictor/internal/draw"
	"github.com/ssqtools/predictor/internal/posterior"
	"github.com/ssqtools/predictor/internal/scoring"
	"github.com/ssqtools/predictor/internal/selector"
)

// Prediction modes.
const (
	ModeTop    = "top"
	ModeSample = "sample"
)

// Options are the per-run knobs. Defaults() mirrors the configuration
// defaults; presets and CLI flags layer on top before Run.
type Options struct {
	Mode        string
	Count       int
	Seed        int64
	AlphaRed    float64
	AlphaBlue   float64
	Beta        float64
	Recent      int
	Decay       float64
	Temperature float64
	Rebargain   bool
}

// Defaults returns the baseline run options.
func Defaults() Options {
	return Options{
		Mode:        ModeSample,
		Count:       6,
		Seed:        candidate.DefaultSeed,
		AlphaRed:    posterior.DefaultAlpha,
		AlphaBlue:   posterior.DefaultAlpha,
		Beta:        selector.DefaultBeta,
		Temperature: 1.0,
		Rebargain:   true,
	}
}

// ApplyPreset overrides only the knobs the preset names.
func (o *Options) ApplyPreset(p config.Preset) {
	if p.Beta != nil {
		o.Beta = *p.Beta
	}
	if p.Recent != nil {
		o.Recent = *p.Recent
	}
	if p.Decay != nil {
		o.Decay = *p.Decay
	}
	if p.Temperature != nil {
		o.Temperature = *p.Temperature
	}
}

// Result is the run's final deliverable. Top is always present; Samples and
// the winner only when sample mode ran (and, for the winner, when the
// selector was enabled). Rounds records the elimination history for audit.
type Result struct {
	RunID        string
	Distribution posterior.Distribution
	Top          candidate.Candidate
	Samples      []candidate.Candidate
	Winner       *candidate.Candidate
	WinnerScore  float64
	Rounds       []selector.Round
}

// Run executes one prediction over the loaded history.
func Run(records []draw.Record, opts Options, log zerolog.Logger) (*Result, error) {
	if opts.Mode != ModeTop && opts.Mode != ModeSample {
		return nil, fmt.Errorf("unknown prediction mode %q (want %q or %q)", opts.Mode, ModeTop, ModeSample)
	}

	dist, err := posterior.Estimate(records, posterior.Options{
		AlphaRed:  opts.AlphaRed,
		AlphaBlue: opts.AlphaBlue,
		Recent:    opts.Recent,
		Decay:     opts.Decay,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:        uuid.NewString(),
		Distribution: dist,
	}

	res.Top = candidate.Top(dist)
	res.Top.LogLikelihood = scoring.LogLikelihood(res.Top, dist)

	log.Debug().
		Str("run_id", res.RunID).
		Int("records", len(records)).
		Str("mode", opts.Mode).
		Msg("Computed posterior and top candidate")

	if opts.Mode == ModeTop {
		// Nothing to re-bargain with a single candidate.
		return res, nil
	}

	res.Samples = candidate.Sample(dist, opts.Count, opts.Seed, opts.Temperature)
	for i := range res.Samples {
		res.Samples[i].LogLikelihood = scoring.LogLikelihood(res.Samples[i], dist)
	}

	if opts.Rebargain {
		// The top candidate always enters the pool at index 0, ahead of the
		// samples in generation order.
		pool := make([]candidate.Candidate, 0, len(res.Samples)+1)
		pool = append(pool, res.Top)
		pool = append(pool, res.Samples...)

		selRes, err := selector.Select(pool, dist, opts.Beta)
		if err != nil {
			return nil, err
		}

		winner := selRes.Winner
		res.Winner = &winner
		res.WinnerScore = selRes.Score
		res.Rounds = selRes.Rounds

		log.Debug().
			Str("run_id", res.RunID).
			Str("winner", winner.Tag).
			Float64("score", selRes.Score).
			Int("rounds", len(selRes.Rounds)).
			Msg("Re-bargaining complete")
	}

	return res, nil
}

// Render writes the run output in the fixed contract order: the top
// candidate, then each sample in generation order, then the winner with its
// final adjusted score. External tooling parses this layout; do not reorder.
func Render(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "Top: %s\n", res.Top); err != nil {
		return err
	}

	for i, c := range res.Samples {
		if _, err := fmt.Fprintf(w, "Sample #%d: %s\n", i+1, c); err != nil {
			return err
		}
	}

	if res.Winner != nil {
		if _, err := fmt.Fprintf(w, "Winner: %s (%s, score %.4f)\n", res.Winner, res.Winner.Tag, res.WinnerScore); err != nil {
			return err
		}
	}

	return nil
}
