package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/latticehq/lattice/internal/model"
)

// AddEntity upserts an extracted entity by id. Entities are informational:
// the retriever never reads them, but extractors record them and the status
// and export commands surface them.
func (s *SQLiteStore) AddEntity(ctx context.Context, e model.Entity) (model.Entity, error) {
	if e.ID == "" {
		e.ID = s.newID("ent")
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entities (id, name, type, tool, path, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name       = excluded.name,
			type       = excluded.type,
			tool       = excluded.tool,
			path       = excluded.path,
			metadata   = excluded.metadata,
			updated_at = excluded.updated_at`,
		e.ID, e.Name, string(e.Type), string(e.Tool), nullString(e.Path), nullString(e.Metadata),
		e.CreatedAt.Format(time.RFC3339Nano), e.UpdatedAt.Format(time.RFC3339Nano))
	return e, err
}

// ListEntities returns all extracted entities, ordered by name.
func (s *SQLiteStore) ListEntities(ctx context.Context) ([]model.Entity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, tool, path, metadata, created_at, updated_at
		FROM entities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []model.Entity
	for rows.Next() {
		var e model.Entity
		var etype, tool, createdAt, updatedAt string
		var path, metadata sql.NullString
		err := rows.Scan(&e.ID, &e.Name, &etype, &tool, &path, &metadata, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		e.Type = model.EntityType(etype)
		e.Tool = model.DataTool(tool)
		if path.Valid {
			e.Path = path.String
		}
		if metadata.Valid {
			e.Metadata = metadata.String
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// CountEntities returns the number of extracted entities.
func (s *SQLiteStore) CountEntities(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&n)
	return n, err
}
