package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ssqtools/predictor/internal/config"
	"github.com/ssqtools/predictor/pkg/logger"
)

// runContext carries what every subcommand needs after root setup.
type runContext struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	rc := &runContext{}
	var logLevel string

	root := &cobra.Command{
		Use:           "predictor",
		Short:         "Double color ball candidate generator and analyzer",
		Long:          "Generates candidate plays for the 6-of-33 + 1-of-16 double color ball format from historical draw statistics.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			rc.cfg = cfg
			rc.log = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
			logger.SetGlobalLogger(rc.log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newPredictCmd(rc))
	root.AddCommand(newFetchCmd(rc))
	root.AddCommand(newAnalyzeCmd(rc))
	root.AddCommand(newBacktestCmd(rc))

	return root
}
