package db

import "lindas-hydro/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
