package main

import (
	"fmt"
	"os"

	"github.com/ssqtools/predictor/internal/draw"
)

// loadRecords resolves the historical dataset in priority order: an explicit
// CSV path (flag or SSQ_DATASET_CSV), then the msgpack cache, then the SQLite
// archive. The returned records are ordered oldest first.
func (rc *runContext) loadRecords(csvPath string) ([]draw.Record, error) {
	if csvPath == "" {
		csvPath = rc.cfg.DatasetCSV
	}
	if csvPath != "" {
		rc.log.Debug().Str("path", csvPath).Msg("Loading draws from CSV")
		return draw.LoadCSV(csvPath)
	}

	if _, err := os.Stat(rc.cfg.CachePath()); err == nil {
		rc.log.Debug().Str("path", rc.cfg.CachePath()).Msg("Loading draws from cache")
		return draw.LoadCache(rc.cfg.CachePath())
	}

	if _, err := os.Stat(rc.cfg.ArchivePath()); err == nil {
		rc.log.Debug().Str("path", rc.cfg.ArchivePath()).Msg("Loading draws from archive")
		store, err := draw.OpenStore(rc.cfg.ArchivePath(), rc.log)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadAll()
	}

	return nil, fmt.Errorf("%w: no dataset found (run 'predictor fetch' or pass --csv)", draw.ErrEmptyDataset)
}
