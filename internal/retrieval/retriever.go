// Package retrieval assembles tiered context responses for task
// descriptions: exact entity matches, related full-text matches, user
// corrections, and project conventions.
package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/latticehq/lattice/internal/extractor"
	"github.com/latticehq/lattice/internal/model"
)

// DefaultMaxTokens is the advisory budget applied when the caller passes 0.
const DefaultMaxTokens = 8000

const (
	// bucketCap bounds each response list. The token budget is advisory;
	// per-bucket caps are what actually limit response size.
	bucketCap = 5

	exactMatchLimit    = 5
	fallbackCandidates = 3
	fallbackLimit      = 3
	relatedLimit       = 10
)

// Store is the subset of storage operations the retriever needs.
type Store interface {
	DecisionsForEntity(ctx context.Context, entity string, limit int) ([]model.Decision, error)
	SearchDecisions(ctx context.Context, query string, limit int) ([]model.Decision, error)
	Corrections(ctx context.Context, entity string) ([]model.Correction, error)
	Conventions(ctx context.Context, tool model.DataTool) ([]model.Convention, error)
}

// Retriever orchestrates tiered context retrieval. It holds no mutable state
// and is safe for concurrent use.
type Retriever struct {
	store Store
	log   *zap.Logger
}

// New builds a Retriever over the given store. A nil logger is replaced with
// a no-op one.
func New(s Store, log *zap.Logger) *Retriever {
	if log == nil {
		log = zap.NewNop()
	}
	return &Retriever{store: s, log: log}
}

// GetContext returns ranked context for a task. maxTokens is advisory: it is
// recorded for callers sizing their prompt, but truncation is by the fixed
// per-bucket cap. Store errors propagate unchanged; an empty response is a
// valid outcome, not an error.
func (r *Retriever) GetContext(ctx context.Context, task string, maxTokens int) (*model.ContextResponse, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	candidates := extractor.Candidates(task)
	r.log.Debug("extracted entity candidates",
		zap.Int("count", len(candidates)),
		zap.Int("max_tokens", maxTokens))

	// Tier 1: exact entity-name matches for every candidate.
	var immediate []model.Decision
	for _, candidate := range candidates {
		decisions, err := r.store.DecisionsForEntity(ctx, candidate, exactMatchLimit)
		if err != nil {
			return nil, err
		}
		immediate = append(immediate, decisions...)
	}

	// Exact matches are sparse for speculative suffix-expanded candidates,
	// so fall back to full-text search over the leading few.
	if len(immediate) == 0 && len(candidates) > 0 {
		for _, candidate := range firstN(candidates, fallbackCandidates) {
			decisions, err := r.store.SearchDecisions(ctx, candidate, fallbackLimit)
			if err != nil {
				return nil, err
			}
			immediate = append(immediate, decisions...)
		}
	}

	// Corrections: per-candidate plus every global-scope correction.
	var corrections []model.Correction
	for _, candidate := range candidates {
		cs, err := r.store.Corrections(ctx, candidate)
		if err != nil {
			return nil, err
		}
		corrections = append(corrections, cs...)
	}
	all, err := r.store.Corrections(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.Scope == model.ScopeGlobal {
			corrections = append(corrections, c)
		}
	}
	corrections = dedupeCorrections(corrections)

	// Tier 2: full-text search on the leading candidate, minus anything the
	// immediate tier already found. The exclusion set is built before the
	// immediate tier is deduplicated or truncated.
	immediateIDs := make(map[string]bool, len(immediate))
	for _, d := range immediate {
		immediateIDs[d.ID] = true
	}

	var related []model.Decision
	if len(candidates) > 0 {
		found, err := r.store.SearchDecisions(ctx, candidates[0], relatedLimit)
		if err != nil {
			return nil, err
		}
		for _, d := range found {
			if !immediateIDs[d.ID] {
				related = append(related, d)
			}
		}
	}

	// Tier 3: conventions. Filtered to dbt for now; the filter is a
	// placeholder for per-tool retrieval and is observable in output.
	conventions, err := r.store.Conventions(ctx, model.ToolDBT)
	if err != nil {
		return nil, err
	}

	resp := &model.ContextResponse{
		ImmediateDecisions: capDecisions(rankDecisions(dedupeDecisions(immediate))),
		RelatedDecisions:   capDecisions(rankDecisions(related)),
		Corrections:        capCorrections(rankCorrections(corrections)),
		Conventions:        capConventions(rankConventions(conventions)),
	}

	r.log.Debug("assembled context",
		zap.Int("immediate", len(resp.ImmediateDecisions)),
		zap.Int("related", len(resp.RelatedDecisions)),
		zap.Int("corrections", len(resp.Corrections)),
		zap.Int("conventions", len(resp.Conventions)))

	return resp, nil
}

func firstN(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func capDecisions(s []model.Decision) []model.Decision {
	if len(s) > bucketCap {
		return s[:bucketCap]
	}
	return s
}

func capCorrections(s []model.Correction) []model.Correction {
	if len(s) > bucketCap {
		return s[:bucketCap]
	}
	return s
}

func capConventions(s []model.Convention) []model.Convention {
	if len(s) > bucketCap {
		return s[:bucketCap]
	}
	return s
}

func dedupeDecisions(decisions []model.Decision) []model.Decision {
	seen := make(map[string]bool, len(decisions))
	var unique []model.Decision
	for _, d := range decisions {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		unique = append(unique, d)
	}
	return unique
}

func dedupeCorrections(corrections []model.Correction) []model.Correction {
	seen := make(map[string]bool, len(corrections))
	var unique []model.Correction
	for _, c := range corrections {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		unique = append(unique, c)
	}
	return unique
}
