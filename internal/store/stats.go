package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"
)

const lastIndexedKey = "last_indexed_at"

// Stats holds database statistics for the status command.
type Stats struct {
	DBPath        string     `json:"db_path"`
	DBSizeBytes   int64      `json:"db_size_bytes"`
	Entities      int        `json:"entities"`
	Decisions     int        `json:"decisions"`
	Conventions   int        `json:"conventions"`
	Corrections   int        `json:"corrections"`
	LastIndexedAt *time.Time `json:"last_indexed_at,omitempty"`
}

// Stats returns record counts and indexing metadata.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var err error
	if st.Entities, err = s.CountEntities(ctx); err != nil {
		return nil, err
	}
	if st.Decisions, err = s.CountDecisions(ctx); err != nil {
		return nil, err
	}
	if st.Conventions, err = s.CountConventions(ctx); err != nil {
		return nil, err
	}
	if st.Corrections, err = s.CountCorrections(ctx); err != nil {
		return nil, err
	}

	last, err := s.LastIndexedAt(ctx)
	if err != nil {
		return nil, err
	}
	st.LastIndexedAt = last

	return st, nil
}

// IsIndexed reports whether an indexing run has ever completed.
func (s *SQLiteStore) IsIndexed(ctx context.Context) (bool, error) {
	last, err := s.LastIndexedAt(ctx)
	return last != nil, err
}

// LastIndexedAt returns the timestamp of the last indexing run, or nil when
// the project has never been indexed.
func (s *SQLiteStore) LastIndexedAt(ctx context.Context) (*time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM metadata WHERE key = ?`, lastIndexedKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := parseTime(value)
	return &t, nil
}

// SetLastIndexedAt records the timestamp of an indexing run.
func (s *SQLiteStore) SetLastIndexedAt(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		lastIndexedKey, t.UTC().Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}
