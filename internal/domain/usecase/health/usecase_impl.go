package health

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/gateway/cache"
	"lindas-hydro/internal/domain/gateway/db"
	"lindas-hydro/internal/domain/gateway/file"
	"lindas-hydro/internal/domain/gateway/queue"
	"lindas-hydro/internal/domain/model"
	"lindas-hydro/internal/domain/usecase/collect"
)

// Components groups the optional health sources. Nil gateways report DISABLED.
type Components struct {
	Database db.HealthDBGateway
	Cache    cache.HealthGateway
	Queue    queue.HealthGateway
}

type healthUseCase struct {
	store      file.ObservationStore
	collect    collect.UseCase
	components Components
}

func NewHealthUseCase(store file.ObservationStore, collect collect.UseCase, components Components) UseCase {
	return &healthUseCase{
		store:      store,
		collect:    collect,
		components: components,
	}
}

// CheckHealth is UP only when the storage and every enabled backend are UP.
// The last collection is reported but does not change the overall status.
func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	response := model.HealthResponse{
		Storage:        useCase.storageHealth(),
		Database:       check(useCase.components.Database),
		Cache:          check(useCase.components.Cache),
		Queue:          check(useCase.components.Queue),
		LastCollection: useCase.lastCollectionHealth(),
	}

	response.Status = model.StatusUp
	for _, component := range []model.ComponentHealthStatus{response.Storage, response.Database, response.Cache, response.Queue} {
		if component.Status != model.StatusUp && component.Status != model.StatusDisabled {
			response.Status = model.StatusDown
		}
	}
	return response
}

type checker interface {
	Health() model.ComponentHealthStatus
}

func check(c checker) model.ComponentHealthStatus {
	if c == nil {
		return model.Disabled()
	}
	return c.Health()
}

func (useCase *healthUseCase) storageHealth() model.ComponentHealthStatus {
	if err := writable(filepath.Dir(useCase.store.Path())); err != nil {
		return model.Down(err)
	}
	info, err := useCase.store.Info()
	if err != nil {
		return model.Down(err)
	}
	return model.Up(map[string]string{
		"path":       info.Path,
		"sizeBytes":  strconv.FormatInt(info.SizeBytes, 10),
		"modifiedAt": info.ModifiedAt.Format(time.RFC3339),
	})
}

func writable(dir string) error {
	tmp, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return fmt.Errorf("data directory %s is not writable: %w", dir, err)
	}
	_ = tmp.Close()
	return os.Remove(tmp.Name())
}

func (useCase *healthUseCase) lastCollectionHealth() model.ComponentHealthStatus {
	summary := useCase.collect.Summary()
	if summary == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "no collection has run yet"},
		}
	}

	details := map[string]string{
		"runId":      summary.RunID,
		"status":     string(summary.Status),
		"finishedAt": summary.FinishedAt.Format(time.RFC3339),
		"appended":   strconv.Itoa(summary.Appended),
	}
	if summary.Status == entity.RunFailed {
		details["message"] = summary.Error
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	return model.Up(details)
}
