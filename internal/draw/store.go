package draw

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const drawSchema = `
CREATE TABLE IF NOT EXISTS draws (
	period TEXT PRIMARY KEY,
	date   TEXT NOT NULL,
	red1   INTEGER NOT NULL,
	red2   INTEGER NOT NULL,
	red3   INTEGER NOT NULL,
	red4   INTEGER NOT NULL,
	red5   INTEGER NOT NULL,
	red6   INTEGER NOT NULL,
	blue   INTEGER NOT NULL
);
`

// Store is the local draw archive. The fetch command appends newly published
// draws here; predict and analyze read the full history back out.
type Store struct {
	conn *sql.DB
	path string
	log  zerolog.Logger
}

// OpenStore opens (and creates if needed) the SQLite draw archive.
func OpenStore(path string, log zerolog.Logger) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve archive path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	// WAL with NORMAL sync: the archive is append-mostly and cheap to refetch.
	connStr := absPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)"

	conn, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open draw archive: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping draw archive: %w", err)
	}

	if _, err := conn.Exec(drawSchema); err != nil {
		return nil, fmt.Errorf("failed to apply draw archive schema: %w", err)
	}

	return &Store{
		conn: conn,
		path: absPath,
		log:  log.With().Str("component", "draw_store").Logger(),
	}, nil
}

// Close closes the archive connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the archive file path.
func (s *Store) Path() string {
	return s.path
}

// SaveAll upserts records into the archive within one transaction.
func (s *Store) SaveAll(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO draws (period, date, red1, red2, red3, red4, red5, red6, blue)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(period) DO UPDATE SET
			date = excluded.date,
			red1 = excluded.red1, red2 = excluded.red2, red3 = excluded.red3,
			red4 = excluded.red4, red5 = excluded.red5, red6 = excluded.red6,
			blue = excluded.blue
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare draw insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(
			rec.Period, rec.Date,
			rec.Reds[0], rec.Reds[1], rec.Reds[2], rec.Reds[3], rec.Reds[4], rec.Reds[5],
			rec.Blue,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to store draw %s: %w", rec.Period, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit draw archive: %w", err)
	}

	s.log.Debug().Int("count", len(records)).Msg("Stored draw records")
	return nil
}

// LoadAll returns every archived draw, oldest period first.
func (s *Store) LoadAll() ([]Record, error) {
	rows, err := s.conn.Query(`
		SELECT period, date, red1, red2, red3, red4, red5, red6, blue
		FROM draws
		ORDER BY period ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw archive: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.Period, &rec.Date,
			&rec.Reds[0], &rec.Reds[1], &rec.Reds[2], &rec.Reds[3], &rec.Reds[4], &rec.Reds[5],
			&rec.Blue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan draw record: %w", err)
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		rec.SortReds()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draw archive: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	return records, nil
}

// LatestPeriod returns the highest archived period code, or "" when the
// archive is empty. The fetcher uses this to stop paging early.
func (s *Store) LatestPeriod() (string, error) {
	var period sql.NullString
	err := s.conn.QueryRow(`SELECT MAX(period) FROM draws`).Scan(&period)
	if err != nil {
		return "", fmt.Errorf("failed to query latest period: %w", err)
	}
	if !period.Valid {
		return "", nil
	}
	return period.String, nil
}
