package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssqtools/predictor/internal/analysis"
)

func newAnalyzeCmd(rc *runContext) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print descriptive statistics over the historical draws",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := rc.loadRecords(csvPath)
			if err != nil {
				return err
			}

			report, err := analysis.Analyze(records)
			if err != nil {
				return err
			}

			w := os.Stdout
			fmt.Fprintf(w, "Draws analyzed: %d\n\n", report.Draws)

			fmt.Fprintln(w, "Hot reds:")
			for _, nc := range report.HotReds {
				fmt.Fprintf(w, "  %02d  %d times\n", nc.Number, nc.Count)
			}
			fmt.Fprintln(w, "Cold reds:")
			for _, nc := range report.ColdReds {
				fmt.Fprintf(w, "  %02d  %d times\n", nc.Number, nc.Count)
			}

			fmt.Fprintln(w, "Hot blues:")
			for _, nc := range report.HotBlues {
				fmt.Fprintf(w, "  %02d  %d times\n", nc.Number, nc.Count)
			}
			fmt.Fprintln(w, "Cold blues:")
			for _, nc := range report.ColdBlues {
				fmt.Fprintf(w, "  %02d  %d times\n", nc.Number, nc.Count)
			}

			fmt.Fprintln(w, "\nOdd red count per draw:")
			for k, n := range report.OddCountDist {
				fmt.Fprintf(w, "  %d odd: %d draws\n", k, n)
			}

			fmt.Fprintf(w, "\nRed sum:  mean %.1f, stddev %.1f, range [%.0f, %.0f]\n",
				report.RedSum.Mean, report.RedSum.StdDev, report.RedSum.Min, report.RedSum.Max)
			fmt.Fprintf(w, "Red span: mean %.1f, stddev %.1f, range [%.0f, %.0f]\n",
				report.RedSpan.Mean, report.RedSpan.StdDev, report.RedSpan.Min, report.RedSpan.Max)
			fmt.Fprintf(w, "Draws with consecutive reds: %.1f%%\n", report.ConsecutiveRate*100)

			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "historical dataset CSV path (overrides cache and archive)")

	return cmd
}
