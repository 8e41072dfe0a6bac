package store

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/latticehq/lattice/internal/model"
)

// SQLiteStore owns the database handle. It is safe for concurrent readers
// (WAL mode); writes are expected to come from a single process.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
}

// New opens or creates a SQLite database at the given path.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		path:    dbPath,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Open opens an existing database. Unlike New it refuses to create one,
// returning a NotInitializedError when the file is missing.
func Open(dbPath string) (*SQLiteStore, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, &NotInitializedError{Path: dbPath}
	}
	return New(dbPath)
}

func (s *SQLiteStore) newID(prefix string) string {
	return prefix + "_" + ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entities (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		type       TEXT NOT NULL,
		tool       TEXT NOT NULL,
		path       TEXT,
		metadata   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS decisions (
		id          TEXT PRIMARY KEY,
		entity      TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		change_type TEXT NOT NULL,
		why         TEXT NOT NULL,
		context     TEXT,
		source      TEXT NOT NULL,
		source_ref  TEXT NOT NULL,
		author      TEXT NOT NULL,
		timestamp   TEXT NOT NULL,
		confidence  REAL NOT NULL,
		tags        TEXT,
		tool        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_entity ON decisions(entity);
	CREATE INDEX IF NOT EXISTS idx_decisions_tool ON decisions(tool);
	CREATE INDEX IF NOT EXISTS idx_decisions_timestamp ON decisions(timestamp DESC);

	CREATE TABLE IF NOT EXISTS conventions (
		id          TEXT PRIMARY KEY,
		type        TEXT NOT NULL,
		pattern     TEXT NOT NULL,
		applies_to  TEXT NOT NULL,
		examples    TEXT NOT NULL,
		frequency   INTEGER NOT NULL,
		confidence  REAL NOT NULL,
		detected_at TEXT NOT NULL,
		tool        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conventions_tool ON conventions(tool);

	CREATE TABLE IF NOT EXISTS corrections (
		id          TEXT PRIMARY KEY,
		entity      TEXT NOT NULL,
		entity_type TEXT,
		correction  TEXT NOT NULL,
		context     TEXT,
		added_by    TEXT NOT NULL,
		added_at    TEXT NOT NULL,
		scope       TEXT NOT NULL,
		priority    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_corrections_entity ON corrections(entity);

	CREATE TABLE IF NOT EXISTS metadata (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS decisions_fts USING fts5(
		entity, why, context, tags,
		content=decisions,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Triggers keep the FTS index and the decisions table in the same
	// transaction: a decision is never stored without being indexed.
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS decisions_ai AFTER INSERT ON decisions BEGIN
		INSERT INTO decisions_fts(rowid, entity, why, context, tags)
		VALUES (new.rowid, new.entity, new.why, new.context, new.tags);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS decisions_ad AFTER DELETE ON decisions BEGIN
		INSERT INTO decisions_fts(decisions_fts, rowid, entity, why, context, tags)
		VALUES('delete', old.rowid, old.entity, old.why, old.context, old.tags);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS decisions_au AFTER UPDATE ON decisions BEGIN
		INSERT INTO decisions_fts(decisions_fts, rowid, entity, why, context, tags)
		VALUES('delete', old.rowid, old.entity, old.why, old.context, old.tags);
		INSERT INTO decisions_fts(rowid, entity, why, context, tags)
		VALUES (new.rowid, new.entity, new.why, new.context, new.tags);
	END`)

	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func joinEntityTypes(types []model.EntityType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitEntityTypes(s string) []model.EntityType {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	types := make([]model.EntityType, len(parts))
	for i, p := range parts {
		types[i] = model.EntityType(p)
	}
	return types
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
