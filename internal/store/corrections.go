package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/latticehq/lattice/internal/model"
)

// AddCorrection upserts a correction by id. An empty id is assigned one.
func (s *SQLiteStore) AddCorrection(ctx context.Context, c model.Correction) (model.Correction, error) {
	if c.ID == "" {
		c.ID = s.newID("cor")
	}
	if c.AddedAt.IsZero() {
		c.AddedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corrections (id, entity, entity_type, correction, context, added_by, added_at, scope, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entity      = excluded.entity,
			entity_type = excluded.entity_type,
			correction  = excluded.correction,
			context     = excluded.context,
			added_by    = excluded.added_by,
			added_at    = excluded.added_at,
			scope       = excluded.scope,
			priority    = excluded.priority`,
		c.ID, c.Entity, nullString(string(c.EntityType)), c.Correction, c.Context,
		c.AddedBy, c.AddedAt.UTC().Format(time.RFC3339Nano), string(c.Scope), string(c.Priority))
	return c, err
}

// correctionOrder ranks high above medium above low, then by recency.
const correctionOrder = `
	ORDER BY CASE priority
		WHEN 'high' THEN 3
		WHEN 'medium' THEN 2
		WHEN 'low' THEN 1
		ELSE 0
	END DESC, added_at DESC`

// Corrections returns corrections for an entity, including every
// global-scope correction. An empty entity returns all corrections.
func (s *SQLiteStore) Corrections(ctx context.Context, entity string) ([]model.Correction, error) {
	var rows *sql.Rows
	var err error

	cols := `SELECT id, entity, entity_type, correction, context, added_by, added_at, scope, priority
		FROM corrections`

	if entity != "" {
		rows, err = s.db.QueryContext(ctx,
			cols+` WHERE entity = ? OR scope = 'global'`+correctionOrder, entity)
	} else {
		rows, err = s.db.QueryContext(ctx, cols+correctionOrder)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []model.Correction
	for rows.Next() {
		var c model.Correction
		var entityType sql.NullString
		var cctx sql.NullString
		var addedAt, scope, priority string
		err := rows.Scan(&c.ID, &c.Entity, &entityType, &c.Correction, &cctx,
			&c.AddedBy, &addedAt, &scope, &priority)
		if err != nil {
			return nil, err
		}
		if entityType.Valid {
			c.EntityType = model.EntityType(entityType.String)
		}
		if cctx.Valid {
			c.Context = cctx.String
		}
		c.AddedAt = parseTime(addedAt)
		c.Scope = model.CorrectionScope(scope)
		c.Priority = model.CorrectionPriority(priority)
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}

// CountCorrections returns the number of stored corrections.
func (s *SQLiteStore) CountCorrections(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM corrections`).Scan(&n)
	return n, err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
