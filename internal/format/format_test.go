package format

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/model"
)

func sampleResponse() *model.ContextResponse {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &model.ContextResponse{
		ImmediateDecisions: []model.Decision{{
			ID: "dec_1", Entity: "revenue", EntityType: model.EntityColumn,
			ChangeType: model.ChangeCreated, Why: "Excludes refunds per accounting policy",
			Source: model.SourceGitCommit, SourceRef: "abc123", Author: "dev",
			Timestamp: now, Confidence: 0.9, Tool: model.ToolDBT,
		}},
		RelatedDecisions: []model.Decision{{
			ID: "dec_2", Entity: "orders", EntityType: model.EntityModel,
			ChangeType: model.ChangeModified, Why: "Cancelled rows dropped",
			Source: model.SourceYAMLDescription, SourceRef: "models/orders.yml", Author: "dev",
			Timestamp: now, Confidence: 0.7, Tool: model.ToolDBT,
		}},
		Corrections: []model.Correction{{
			ID: "cor_1", Correction: "Always exclude taxes", AddedBy: "user",
			AddedAt: now, Scope: model.ScopeGlobal, Priority: model.PriorityHigh,
		}},
		Conventions: []model.Convention{{
			ID: "cnv_1", Type: model.ConventionPrefix, Pattern: "stg_",
			AppliesTo: []model.EntityType{model.EntityModel},
			Examples:  []string{"stg_orders", "stg_customers", "stg_payments", "stg_refunds"},
			Frequency: 12, Confidence: 0.9, DetectedAt: now, Tool: model.ToolDBT,
		}},
	}
}

func TestMarkdownSections(t *testing.T) {
	out := Markdown(sampleResponse(), "how should I calculate revenue?")

	assert.Contains(t, out, "# Context for: how should I calculate revenue?")
	assert.Contains(t, out, "## Important Notes")
	assert.Contains(t, out, "## Relevant Decisions")
	assert.Contains(t, out, "## Conventions")
	assert.Contains(t, out, "## Related Context")

	assert.Contains(t, out, "Excludes refunds per accounting policy")
	assert.Contains(t, out, "Always exclude taxes")
	assert.Contains(t, out, "**stg_**")
	assert.NotContains(t, out, NoContextFound)

	// Corrections render ahead of decisions.
	assert.Less(t, strings.Index(out, "## Important Notes"), strings.Index(out, "## Relevant Decisions"))
}

func TestMarkdownBoundsConventionExamples(t *testing.T) {
	out := Markdown(sampleResponse(), "task")

	assert.Contains(t, out, "stg_orders, stg_customers, stg_payments")
	assert.NotContains(t, out, "stg_refunds")
}

func TestMarkdownEmptyResponse(t *testing.T) {
	out := Markdown(&model.ContextResponse{}, "anything")

	assert.Contains(t, out, NoContextFound)
	assert.NotContains(t, out, "## ")
}

func TestMarkdownGlobalCorrectionLabel(t *testing.T) {
	resp := &model.ContextResponse{
		Corrections: []model.Correction{{
			ID: "cor_1", Correction: "Always exclude taxes",
			Scope: model.ScopeGlobal, Priority: model.PriorityHigh,
		}},
	}
	out := Markdown(resp, "task")

	assert.Contains(t, out, "**global**: Always exclude taxes")
}

func TestJSONPreservesAllLists(t *testing.T) {
	out, err := JSON(sampleResponse())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	for _, key := range []string{"immediate_decisions", "related_decisions", "corrections", "conventions"} {
		assert.Contains(t, decoded, key)
	}

	var roundTrip model.ContextResponse
	require.NoError(t, json.Unmarshal([]byte(out), &roundTrip))
	require.Len(t, roundTrip.ImmediateDecisions, 1)
	assert.Equal(t, "dec_1", roundTrip.ImmediateDecisions[0].ID)
	assert.InDelta(t, 0.9, roundTrip.ImmediateDecisions[0].Confidence, 1e-9)
}
