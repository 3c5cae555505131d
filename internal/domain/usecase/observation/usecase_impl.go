package observation

import (
	"context"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/gateway/cache"
	"lindas-hydro/internal/domain/gateway/file"
	"lindas-hydro/internal/domain/model"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

type observationUseCase struct {
	store  file.ObservationStore
	latest cache.LatestCache
}

// NewObservationUseCase builds the read side. latest may be nil when the cache is disabled.
func NewObservationUseCase(store file.ObservationStore, latest cache.LatestCache) UseCase {
	return &observationUseCase{store: store, latest: latest}
}

func (useCase *observationUseCase) FindPage(station string, page int, size int) (*model.Page[entity.Observation], error) {
	content, total, err := useCase.store.Page(station, page, size)
	if err != nil {
		return nil, err
	}
	return model.NewPage(content, page, size, total), nil
}

func (useCase *observationUseCase) Latest(ctx context.Context) ([]entity.Observation, error) {
	if useCase.latest != nil {
		cached, err := useCase.latest.All(ctx)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil {
			log.Warn(msg.GetMessage("observation.cache-fail", err))
		}
	}
	return useCase.store.Latest()
}
