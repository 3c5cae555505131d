package health

import "lindas-hydro/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}
