package cache

import (
	"context"

	"lindas-hydro/internal/domain/entity"
)

// LatestCache holds the most recent observation per station.
type LatestCache interface {
	Put(ctx context.Context, observations []entity.Observation) error
	// All returns the cached observations ordered by station, empty when nothing is cached.
	All(ctx context.Context) ([]entity.Observation, error)
}
