package db

import (
	"context"

	"lindas-hydro/internal/domain/entity"
)

// ObservationGateway mirrors new observations into a relational table.
type ObservationGateway interface {
	Migrate(ctx context.Context) error
	// Upsert inserts observations not stored yet and returns how many rows were written.
	Upsert(ctx context.Context, observations []entity.Observation) (int64, error)
}

// CollectionRunGateway keeps the audit trail of collection runs.
type CollectionRunGateway interface {
	Migrate() error
	Save(run entity.CollectionRun) error
	// Last returns nil when no run was recorded.
	Last() (*entity.CollectionRun, error)
}
