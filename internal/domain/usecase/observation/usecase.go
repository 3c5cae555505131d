package observation

import (
	"context"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/model"
)

type UseCase interface {
	// FindPage lists stored observations newest first. An empty station matches all stations.
	FindPage(station string, page int, size int) (*model.Page[entity.Observation], error)
	// Latest returns the most recent observation of every station.
	Latest(ctx context.Context) ([]entity.Observation, error)
}
