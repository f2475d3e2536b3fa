package draw

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// SaveCache writes parsed records to a msgpack cache file so later runs can
// skip CSV parsing. The file is written atomically via a temp file rename.
func SaveCache(path string, records []Record) error {
	if len(records) == 0 {
		return ErrEmptyDataset
	}

	data, err := msgpack.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode draw cache: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write draw cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move draw cache into place: %w", err)
	}

	return nil
}

// LoadCache reads records back from a msgpack cache file. Records are
// re-validated on load; a cache written by a different tool version must not
// smuggle malformed data past the CSV checks.
func LoadCache(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draw cache %s: %w", path, err)
	}

	var records []Record
	if err := msgpack.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: cache decode failed: %v", ErrDataFormat, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, err
		}
		records[i].SortReds()
	}

	// Same normalization as the CSV loader: oldest period first.
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Period < records[b].Period
	})

	return records, nil
}
