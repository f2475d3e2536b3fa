// Package draw holds the historical draw records and their storage backends.
// A record is immutable once loaded; the whole dataset is materialized eagerly
// because every downstream consumer needs random access.
package draw

import (
	"errors"
	"fmt"
	"sort"
)

// Pool dimensions for the double color ball format.
const (
	RedPoolSize  = 33 // red numbers are drawn from 1..33
	BluePoolSize = 16 // blue numbers are drawn from 1..16
	RedsPerDraw  = 6
)

// Sentinel errors for dataset loading. Both are fatal to a run: a malformed
// dataset cannot be partially recovered, the input has to be fixed instead.
var (
	ErrDataFormat   = errors.New("malformed draw record")
	ErrEmptyDataset = errors.New("no usable draw records")
)

// Record is one historical drawing: six distinct red numbers plus one blue
// number, identified by the official period code.
type Record struct {
	Period string `msgpack:"period" json:"period"`
	Date   string `msgpack:"date" json:"date"`
	Reds   [6]int `msgpack:"reds" json:"reds"`
	Blue   int    `msgpack:"blue" json:"blue"`
}

// Validate checks pool bounds and red uniqueness. The error message names the
// offending record so the caller can locate it in the source dataset.
func (r Record) Validate() error {
	seen := make(map[int]bool, RedsPerDraw)
	for _, n := range r.Reds {
		if n < 1 || n > RedPoolSize {
			return fmt.Errorf("%w: period %s: red number %d outside [1,%d]", ErrDataFormat, r.Period, n, RedPoolSize)
		}
		if seen[n] {
			return fmt.Errorf("%w: period %s: duplicate red number %d", ErrDataFormat, r.Period, n)
		}
		seen[n] = true
	}
	if r.Blue < 1 || r.Blue > BluePoolSize {
		return fmt.Errorf("%w: period %s: blue number %d outside [1,%d]", ErrDataFormat, r.Period, r.Blue, BluePoolSize)
	}
	return nil
}

// SortReds orders the red numbers ascending. Statistics treat the reds as an
// unordered set, so normalizing here costs nothing and keeps display stable.
func (r *Record) SortReds() {
	sort.Ints(r.Reds[:])
}
