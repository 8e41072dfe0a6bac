package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/model"
)

func testConvention(id, pattern string, confidence float64, frequency int, tool model.DataTool) model.Convention {
	return model.Convention{
		ID:         id,
		Type:       model.ConventionPrefix,
		Pattern:    pattern,
		AppliesTo:  []model.EntityType{model.EntityModel},
		Examples:   []string{pattern + "orders", pattern + "customers"},
		Frequency:  frequency,
		Confidence: confidence,
		DetectedAt: time.Now().UTC(),
		Tool:       tool,
	}
}

func TestConventionsOrderedByConfidence(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddConvention(ctx, testConvention("cnv_1", "stg_", 0.7, 12, model.ToolDBT)))
	require.NoError(t, s.AddConvention(ctx, testConvention("cnv_2", "dim_", 0.95, 8, model.ToolDBT)))
	require.NoError(t, s.AddConvention(ctx, testConvention("cnv_3", "fct_", 0.8, 5, model.ToolDBT)))

	got, err := s.Conventions(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "dim_", got[0].Pattern)
	assert.Equal(t, "fct_", got[1].Pattern)
	assert.Equal(t, "stg_", got[2].Pattern)
}

func TestConventionsToolFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddConvention(ctx, testConvention("cnv_1", "stg_", 0.9, 10, model.ToolDBT)))
	require.NoError(t, s.AddConvention(ctx, testConvention("cnv_2", "raw_", 0.9, 10, model.ToolAirflow)))

	got, err := s.Conventions(ctx, model.ToolDBT)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stg_", got[0].Pattern)

	all, err := s.Conventions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConventionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c := testConvention("cnv_1", "stg_", 0.85, 14, model.ToolDBT)
	require.NoError(t, s.AddConvention(ctx, c))

	got, err := s.Conventions(ctx, model.ToolDBT)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.Pattern, got[0].Pattern)
	assert.Equal(t, c.Examples, got[0].Examples)
	assert.Equal(t, []model.EntityType{model.EntityModel}, got[0].AppliesTo)
	assert.Equal(t, 14, got[0].Frequency)
}

func TestExportSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddDecision(ctx, testDecision("dec_1", "revenue", 0.9, time.Now().UTC())))
	require.NoError(t, s.AddConvention(ctx, testConvention("cnv_1", "stg_", 0.9, 10, model.ToolDBT)))
	addCorrection(t, s, "cor_1", "revenue", "exclude refunds", model.ScopeEntity, model.PriorityHigh, time.Now().UTC())
	_, err := s.AddEntity(ctx, model.Entity{Name: "fct_orders", Type: model.EntityModel, Tool: model.ToolDBT})
	require.NoError(t, err)

	snap, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Decisions, 1)
	assert.Len(t, snap.Conventions, 1)
	assert.Len(t, snap.Corrections, 1)
	assert.Len(t, snap.Entities, 1)
}
