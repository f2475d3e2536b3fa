package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssqtools/predictor/internal/analysis"
	"github.com/ssqtools/predictor/internal/backtest"
	"github.com/ssqtools/predictor/internal/posterior"
)

func newBacktestCmd(rc *runContext) *cobra.Command {
	var (
		csvPath    string
		periods    int
		seed       int64
		strategies []string
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Compare picking strategies against simulated official draws",
		Long: `Simulates uniform official draws and judges one ticket per strategy per
period using the published prize tiers. Exists to show that no strategy beats
random over the long run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := rc.loadRecords(csvPath)
			if err != nil {
				return err
			}

			report, err := analysis.Analyze(records)
			if err != nil {
				return err
			}
			dist, err := posterior.Estimate(records, posterior.DefaultOptions())
			if err != nil {
				return err
			}

			available := map[string]backtest.Strategy{
				"random":    backtest.NewRandomStrategy(),
				"hotcold":   backtest.NewHotColdStrategy(report.RedCounts, report.BlueCounts),
				"oddeven":   backtest.NewOddEvenStrategy(),
				"posterior": backtest.NewPosteriorStrategy(dist),
			}

			var selected []backtest.Strategy
			for _, name := range strategies {
				s, ok := available[name]
				if !ok {
					return fmt.Errorf("unknown strategy %q (have: random, hotcold, oddeven, posterior)", name)
				}
				selected = append(selected, s)
			}

			results, err := backtest.Run(backtest.Options{Periods: periods, Seed: seed}, selected)
			if err != nil {
				return err
			}

			w := os.Stdout
			fmt.Fprintf(w, "Simulated %d periods (seed %d)\n\n", periods, seed)
			for _, r := range results {
				var tiers []string
				for t := 1; t <= backtest.NumTiers; t++ {
					tiers = append(tiers, fmt.Sprintf("T%d:%d", t, r.Tiers[t]))
				}
				fmt.Fprintf(w, "%-10s hit rate %.4f  %s\n", r.Name, r.HitRate(periods), strings.Join(tiers, " "))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "historical dataset CSV path (overrides cache and archive)")
	cmd.Flags().IntVar(&periods, "periods", 100000, "number of simulated draw periods")
	cmd.Flags().Int64Var(&seed, "seed", 42, "simulation seed")
	cmd.Flags().StringSliceVar(&strategies, "strategies", []string{"random", "hotcold", "oddeven", "posterior"}, "strategies to compare")

	return cmd
}
