package store

import (
	"context"

	"github.com/latticehq/lattice/internal/model"
)

// Snapshot is a full dump of the store, for export and backup.
type Snapshot struct {
	Decisions   []model.Decision   `json:"decisions"`
	Conventions []model.Convention `json:"conventions"`
	Corrections []model.Correction `json:"corrections"`
	Entities    []model.Entity     `json:"entities"`
}

// Export returns every stored record.
func (s *SQLiteStore) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	var err error
	if snap.Decisions, err = s.ListDecisions(ctx, 100000); err != nil {
		return nil, err
	}
	if snap.Conventions, err = s.Conventions(ctx, ""); err != nil {
		return nil, err
	}
	if snap.Corrections, err = s.Corrections(ctx, ""); err != nil {
		return nil, err
	}
	if snap.Entities, err = s.ListEntities(ctx); err != nil {
		return nil, err
	}

	return snap, nil
}
