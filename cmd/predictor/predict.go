package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssqtools/predictor/internal/config"
	"github.com/ssqtools/predictor/internal/pipeline"
)

func newPredictCmd(rc *runContext) *cobra.Command {
	var (
		csvPath     string
		mode        string
		count       int
		seed        int64
		alphaRed    float64
		alphaBlue   float64
		beta        float64
		recent      int
		decay       float64
		temperature float64
		profile     string
		noRebargain bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Generate candidate plays from historical draw statistics",
		Long: `Generates candidate plays. Mode "top" deterministically emits the six
most probable reds plus the most probable blue. Mode "sample" additionally
draws weighted candidate sets with a seeded generator and, unless disabled,
re-bargains the pool down to a single winning set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Defaults()
			opts.Seed = rc.cfg.Seed
			opts.Count = rc.cfg.Count
			opts.AlphaRed = rc.cfg.AlphaRed
			opts.AlphaBlue = rc.cfg.AlphaBlue
			opts.Beta = rc.cfg.Beta
			opts.Temperature = rc.cfg.Temperature

			if profile != "" {
				presets, err := config.LoadPresets(rc.cfg.PresetsFile)
				if err != nil {
					return err
				}
				preset, ok := presets[profile]
				if !ok {
					return fmt.Errorf("unknown preset %q", profile)
				}
				opts.ApplyPreset(preset)
			}

			// Explicit flags win over both config defaults and the preset.
			opts.Mode = mode
			if cmd.Flags().Changed("num-sets") {
				opts.Count = count
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if cmd.Flags().Changed("alpha-red") {
				opts.AlphaRed = alphaRed
			}
			if cmd.Flags().Changed("alpha-blue") {
				opts.AlphaBlue = alphaBlue
			}
			if cmd.Flags().Changed("beta") {
				opts.Beta = beta
			}
			if cmd.Flags().Changed("recent") {
				opts.Recent = recent
			}
			if cmd.Flags().Changed("decay") {
				opts.Decay = decay
			}
			if cmd.Flags().Changed("temperature") {
				opts.Temperature = temperature
			}
			opts.Rebargain = !noRebargain

			records, err := rc.loadRecords(csvPath)
			if err != nil {
				return err
			}

			res, err := pipeline.Run(records, opts, rc.log)
			if err != nil {
				return err
			}

			return pipeline.Render(os.Stdout, res)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "historical dataset CSV path (overrides cache and archive)")
	cmd.Flags().StringVar(&mode, "method", pipeline.ModeSample, "prediction method: top or sample")
	cmd.Flags().IntVar(&count, "num-sets", 6, "number of sampled candidate sets")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for reproducible sampling")
	cmd.Flags().Float64Var(&alphaRed, "alpha-red", 1.0, "Dirichlet prior for the red pool")
	cmd.Flags().Float64Var(&alphaBlue, "alpha-blue", 1.0, "Dirichlet prior for the blue pool")
	cmd.Flags().Float64Var(&beta, "beta", 0.5, "overlap penalty weight for re-bargaining")
	cmd.Flags().IntVar(&recent, "recent", 0, "use only the most recent N draws (0 = all)")
	cmd.Flags().Float64Var(&decay, "decay", 0, "exponential age weight in (0,1]; newest draw weighs most (0 = equal weights)")
	cmd.Flags().Float64Var(&temperature, "temperature", 1.0, "sampling temperature; <1 sharpens, >1 flattens")
	cmd.Flags().StringVar(&profile, "profile", "", "named preset: balanced, dedup, hot (or from the presets file)")
	cmd.Flags().BoolVar(&noRebargain, "no-rebargain", false, "skip the competitive selection round")

	return cmd
}
