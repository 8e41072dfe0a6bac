package store

import (
	"context"
	"time"

	"github.com/latticehq/lattice/internal/model"
)

// AddConvention upserts a convention by id.
func (s *SQLiteStore) AddConvention(ctx context.Context, c model.Convention) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conventions (id, type, pattern, applies_to, examples, frequency, confidence, detected_at, tool)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type        = excluded.type,
			pattern     = excluded.pattern,
			applies_to  = excluded.applies_to,
			examples    = excluded.examples,
			frequency   = excluded.frequency,
			confidence  = excluded.confidence,
			detected_at = excluded.detected_at,
			tool        = excluded.tool`,
		c.ID, string(c.Type), c.Pattern, joinEntityTypes(c.AppliesTo), joinList(c.Examples),
		c.Frequency, c.Confidence, c.DetectedAt.UTC().Format(time.RFC3339Nano), string(c.Tool))
	return err
}

// Conventions returns conventions ordered by confidence descending,
// optionally filtered by source tool.
func (s *SQLiteStore) Conventions(ctx context.Context, tool model.DataTool) ([]model.Convention, error) {
	query := `SELECT id, type, pattern, applies_to, examples, frequency, confidence, detected_at, tool
		FROM conventions`
	args := []any{}
	if tool != "" {
		query += ` WHERE tool = ?`
		args = append(args, string(tool))
	}
	query += ` ORDER BY confidence DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conventions []model.Convention
	for rows.Next() {
		var c model.Convention
		var ctype, appliesTo, examples, detectedAt, ctool string
		err := rows.Scan(&c.ID, &ctype, &c.Pattern, &appliesTo, &examples,
			&c.Frequency, &c.Confidence, &detectedAt, &ctool)
		if err != nil {
			return nil, err
		}
		c.Type = model.ConventionType(ctype)
		c.AppliesTo = splitEntityTypes(appliesTo)
		c.Examples = splitList(examples)
		c.DetectedAt = parseTime(detectedAt)
		c.Tool = model.DataTool(ctool)
		conventions = append(conventions, c)
	}
	return conventions, rows.Err()
}

// CountConventions returns the number of stored conventions.
func (s *SQLiteStore) CountConventions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conventions`).Scan(&n)
	return n, err
}
