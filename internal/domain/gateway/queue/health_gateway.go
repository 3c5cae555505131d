package queue

import "lindas-hydro/internal/domain/model"

type HealthGateway interface {
	Health() model.ComponentHealthStatus
}
