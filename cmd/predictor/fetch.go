package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/ssqtools/predictor/internal/cwl"
	"github.com/ssqtools/predictor/internal/draw"
)

func newFetchCmd(rc *runContext) *cobra.Command {
	var (
		baseURL  string
		maxPages int
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Sync published draw results into the local archive",
		Long: `Fetches draw notices from the China Welfare Lottery endpoint, stopping at
the newest period already archived, and refreshes the msgpack cache. With
--watch the sync repeats on a cron schedule (draws land Tue/Thu/Sun evenings).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if schedule == "" {
				return rc.syncDraws(cmd.Context(), baseURL, maxPages)
			}

			c := cron.New()
			_, err := c.AddFunc(schedule, func() {
				if err := rc.syncDraws(context.Background(), baseURL, maxPages); err != nil {
					rc.log.Error().Err(err).Msg("Scheduled draw sync failed")
				}
			})
			if err != nil {
				return fmt.Errorf("invalid --watch schedule %q: %w", schedule, err)
			}

			// Sync once immediately so a fresh install is usable right away.
			if err := rc.syncDraws(cmd.Context(), baseURL, maxPages); err != nil {
				rc.log.Error().Err(err).Msg("Initial draw sync failed")
			}

			c.Start()
			rc.log.Info().Str("schedule", schedule).Msg("Watching for new draws")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			ctx := c.Stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "draw notice endpoint (default: the official CWL endpoint)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 200, "maximum result pages to fetch")
	cmd.Flags().StringVar(&schedule, "watch", "", "cron schedule for periodic sync, e.g. \"30 21 * * 2,4,0\"")

	return cmd
}

// syncDraws pulls new records, appends them to the archive, and rewrites the
// msgpack cache from the full archive contents.
func (rc *runContext) syncDraws(ctx context.Context, baseURL string, maxPages int) error {
	store, err := draw.OpenStore(rc.cfg.ArchivePath(), rc.log)
	if err != nil {
		return err
	}
	defer store.Close()

	latest, err := store.LatestPeriod()
	if err != nil {
		return err
	}

	client := cwl.NewClient(baseURL, rc.log)
	records, err := client.FetchSince(ctx, latest, maxPages)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		rc.log.Info().Str("latest", latest).Msg("Archive already up to date")
		return nil
	}

	if err := store.SaveAll(records); err != nil {
		return err
	}

	all, err := store.LoadAll()
	if err != nil {
		return err
	}
	if err := draw.SaveCache(rc.cfg.CachePath(), all); err != nil {
		return err
	}

	rc.log.Info().
		Int("new", len(records)).
		Int("total", len(all)).
		Str("latest", all[len(all)-1].Period).
		Msg("Draw archive updated")
	return nil
}
