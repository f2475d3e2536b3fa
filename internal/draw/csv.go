package draw

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Expected CSV header columns. Matching is case-insensitive and ignores
// surrounding whitespace; column order in the file does not matter.
var csvColumns = []string{"period", "date", "red1", "red2", "red3", "red4", "red5", "red6", "blue"}

// LoadCSV reads the historical dataset from a CSV file. Row order in the file
// does not matter: records are sorted by period ascending after parsing, so
// recency windows and decay weights always see oldest first. It fails with
// ErrDataFormat on the first malformed record and with ErrEmptyDataset when no
// records remain after the header.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV parses draw records from CSV content. The first row must be a
// header naming at least the columns period, date, red1..red6 and blue.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataFormat, line, err)
		}

		rec, err := parseRow(row, colIndex)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	// Normalize to oldest-first regardless of how the file was exported.
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Period < records[b].Period
	})

	return records, nil
}

// mapHeader resolves the position of every required column.
func mapHeader(header []string) (map[string]int, error) {
	colIndex := make(map[string]int, len(csvColumns))
	for i, name := range header {
		colIndex[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range csvColumns {
		if _, ok := colIndex[name]; !ok {
			return nil, fmt.Errorf("%w: missing CSV column %q", ErrDataFormat, name)
		}
	}
	return colIndex, nil
}

func parseRow(row []string, colIndex map[string]int) (Record, error) {
	field := func(name string) string {
		idx := colIndex[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := Record{
		Period: field("period"),
		Date:   field("date"),
	}

	for i := 0; i < RedsPerDraw; i++ {
		name := "red" + strconv.Itoa(i+1)
		n, err := strconv.Atoi(field(name))
		if err != nil {
			return Record{}, fmt.Errorf("%w: period %s: column %s is not a number: %q", ErrDataFormat, rec.Period, name, field(name))
		}
		rec.Reds[i] = n
	}

	blue, err := strconv.Atoi(field("blue"))
	if err != nil {
		return Record{}, fmt.Errorf("%w: period %s: column blue is not a number: %q", ErrDataFormat, rec.Period, field("blue"))
	}
	rec.Blue = blue

	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	rec.SortReds()

	return rec, nil
}
