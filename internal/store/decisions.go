package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/latticehq/lattice/internal/model"
)

const decisionCols = `id, entity, entity_type, change_type, why, context,
	source, source_ref, author, timestamp, confidence, tags, tool`

// AddDecision upserts a decision by id. The FTS index entry is written by
// trigger inside the same implicit transaction, so the row and its index
// entry always commit together. The conflict clause updates in place to keep
// the rowid (and with it the FTS mapping) stable.
func (s *SQLiteStore) AddDecision(ctx context.Context, d model.Decision) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decisions (`+decisionCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entity      = excluded.entity,
			entity_type = excluded.entity_type,
			change_type = excluded.change_type,
			why         = excluded.why,
			context     = excluded.context,
			source      = excluded.source,
			source_ref  = excluded.source_ref,
			author      = excluded.author,
			timestamp   = excluded.timestamp,
			confidence  = excluded.confidence,
			tags        = excluded.tags,
			tool        = excluded.tool`,
		d.ID, d.Entity, string(d.EntityType), string(d.ChangeType), d.Why, d.Context,
		string(d.Source), d.SourceRef, d.Author, d.Timestamp.UTC().Format(time.RFC3339Nano),
		d.Confidence, joinList(d.Tags), string(d.Tool))
	return err
}

// DecisionsForEntity returns decisions whose entity name matches exactly,
// newest first.
func (s *SQLiteStore) DecisionsForEntity(ctx context.Context, entity string, limit int) ([]model.Decision, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+decisionCols+` FROM decisions
		WHERE entity = ?
		ORDER BY timestamp DESC
		LIMIT ?`, entity, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDecisions(rows)
}

// ListDecisions returns decisions ordered by timestamp descending.
func (s *SQLiteStore) ListDecisions(ctx context.Context, limit int) ([]model.Decision, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+decisionCols+` FROM decisions
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDecisions(rows)
}

// ftsSanitizer strips characters that are syntax in FTS5 query expressions.
var ftsSanitizer = strings.NewReplacer(`"`, "", "*", "", "(", "", ")", "", ":", "", "?", "")

// SearchDecisions runs a ranked full-text search over entity, why, context,
// and tags. A query that is empty after sanitization returns no results
// rather than an error.
func (s *SQLiteStore) SearchDecisions(ctx context.Context, query string, limit int) ([]model.Decision, error) {
	if limit <= 0 {
		limit = 20
	}

	sanitized := ftsSanitizer.Replace(query)
	if strings.TrimSpace(sanitized) == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.entity, d.entity_type, d.change_type, d.why, d.context,
		       d.source, d.source_ref, d.author, d.timestamp, d.confidence, d.tags, d.tool
		FROM decisions d
		JOIN decisions_fts ON decisions_fts.rowid = d.rowid
		WHERE decisions_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, sanitized, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDecisions(rows)
}

// CountDecisions returns the number of stored decisions.
func (s *SQLiteStore) CountDecisions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&n)
	return n, err
}

func scanDecisions(rows *sql.Rows) ([]model.Decision, error) {
	var decisions []model.Decision
	for rows.Next() {
		var d model.Decision
		var entityType, changeType, source, tool, timestamp string
		var dctx, tags sql.NullString

		err := rows.Scan(&d.ID, &d.Entity, &entityType, &changeType, &d.Why, &dctx,
			&source, &d.SourceRef, &d.Author, &timestamp, &d.Confidence, &tags, &tool)
		if err != nil {
			return nil, err
		}

		d.EntityType = model.EntityType(entityType)
		d.ChangeType = model.ChangeType(changeType)
		d.Source = model.DecisionSource(source)
		d.Tool = model.DataTool(tool)
		d.Timestamp = parseTime(timestamp)
		if dctx.Valid {
			d.Context = dctx.String
		}
		if tags.Valid {
			d.Tags = splitList(tags.String)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}
