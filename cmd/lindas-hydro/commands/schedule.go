package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lindas-hydro/internal/application/controller"
	"lindas-hydro/internal/application/middleware"
	"lindas-hydro/internal/application/schedule"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
	"lindas-hydro/pkg/resource"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Collects on a cron schedule and serves the HTTP API until interrupted.",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	name := resource.GetStringOrDefault("app.name", cmd.Root().Name())

	log.Info(msg.GetMessage("app.start", name))
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	// Init http
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.SetupRecover(e)
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetString("app.server.context-path"))

	runs, cancelRuns := context.WithCancel(context.Background())
	defer cancelRuns()

	healthController := controller.NewHealthController(api, app.health)
	observationController := controller.NewObservationController(api, app.reads)
	collectionController := controller.NewCollectionController(runs, api, app.collect)

	healthController.InitHealthRoutes()
	observationController.InitObservationRoutes()
	collectionController.InitCollectionRoutes()

	// Init schedule
	collectScheduler := schedule.NewCollectScheduler(app.collect,
		resource.GetStringOrDefault("app.schedule.collect-cron", "*/9 * * * *"),
		resource.GetBool("app.schedule.run-on-start"))
	if err = collectScheduler.InitCollectScheduleTasks(); err != nil {
		return err
	}

	statsScheduler, err := schedule.NewFileStatsScheduler(app.store, resource.GetDuration("app.schedule.file-stats-interval"))
	if err != nil {
		collectScheduler.Stop()
		return err
	}
	if err = statsScheduler.InitFileStatsScheduleTasks(); err != nil {
		collectScheduler.Stop()
		return err
	}

	// Start routes
	address := ":" + resource.GetStringOrDefault("app.server.port", "8080")
	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()
	log.Info(msg.GetMessage("app.started", name, address))

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	log.Info(msg.GetMessage("app.shutdown", name))
	collectScheduler.Stop()
	if stopErr := statsScheduler.Stop(); stopErr != nil {
		log.Warn(stopErr.Error())
	}

	timeout := resource.GetDuration("app.server.shutdown-timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error(msg.GetMessage("app.shutdown-fail", shutdownErr), zap.Error(shutdownErr))
	}

	cancelRuns()
	collectionController.Wait()
	return err
}
