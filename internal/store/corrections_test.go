package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/model"
)

func addCorrection(t *testing.T, s *SQLiteStore, id, entity, text string, scope model.CorrectionScope, priority model.CorrectionPriority, at time.Time) {
	t.Helper()
	_, err := s.AddCorrection(context.Background(), model.Correction{
		ID:         id,
		Entity:     entity,
		Correction: text,
		AddedBy:    "user",
		AddedAt:    at,
		Scope:      scope,
		Priority:   priority,
	})
	require.NoError(t, err)
}

func TestCorrectionsForEntityIncludesGlobal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	addCorrection(t, s, "cor_1", "revenue", "exclude refunds", model.ScopeEntity, model.PriorityMedium, now)
	addCorrection(t, s, "cor_2", "", "always exclude taxes", model.ScopeGlobal, model.PriorityLow, now)
	addCorrection(t, s, "cor_3", "discount", "cap at 50 percent", model.ScopeEntity, model.PriorityHigh, now)

	got, err := s.Corrections(ctx, "revenue")
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].ID, got[1].ID}
	assert.Contains(t, ids, "cor_1")
	assert.Contains(t, ids, "cor_2")
}

func TestCorrectionsPriorityBeforeRecency(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	// The high-priority correction is the oldest; it must still come first.
	addCorrection(t, s, "cor_low", "revenue", "low note", model.ScopeEntity, model.PriorityLow, now)
	addCorrection(t, s, "cor_high", "revenue", "high note", model.ScopeEntity, model.PriorityHigh, now.Add(-48*time.Hour))
	addCorrection(t, s, "cor_med_old", "revenue", "older medium", model.ScopeEntity, model.PriorityMedium, now.Add(-2*time.Hour))
	addCorrection(t, s, "cor_med_new", "revenue", "newer medium", model.ScopeEntity, model.PriorityMedium, now.Add(-time.Hour))

	got, err := s.Corrections(ctx, "revenue")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "cor_high", got[0].ID)
	assert.Equal(t, "cor_med_new", got[1].ID)
	assert.Equal(t, "cor_med_old", got[2].ID)
	assert.Equal(t, "cor_low", got[3].ID)
}

func TestCorrectionsGeneratedID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	stored, err := s.AddCorrection(ctx, model.Correction{
		Entity:     "revenue",
		Correction: "exclude refunds",
		AddedBy:    "user",
		Scope:      model.ScopeEntity,
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.AddedAt.IsZero())
}

func TestCorrectionsUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	addCorrection(t, s, "cor_1", "revenue", "first version", model.ScopeEntity, model.PriorityLow, now)
	addCorrection(t, s, "cor_1", "revenue", "second version", model.ScopeEntity, model.PriorityHigh, now)

	n, err := s.CountCorrections(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Corrections(ctx, "revenue")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "second version", got[0].Correction)
	assert.Equal(t, model.PriorityHigh, got[0].Priority)
}
