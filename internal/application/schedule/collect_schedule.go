package schedule

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"lindas-hydro/internal/domain/usecase/collect"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

// CollectScheduler triggers collection runs on a cron expression. A trigger
// arriving while the previous run is still going is skipped.
type CollectScheduler struct {
	cron       *cron.Cron
	useCase    collect.UseCase
	expression string
	runOnStart bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCollectScheduler(useCase collect.UseCase, expression string, runOnStart bool) *CollectScheduler {
	logger := newCronLogger()
	ctx, cancel := context.WithCancel(context.Background())
	return &CollectScheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		useCase:    useCase,
		expression: expression,
		runOnStart: runOnStart,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// InitCollectScheduleTasks registers the collection job and starts the cron loop.
func (scheduler *CollectScheduler) InitCollectScheduleTasks() error {
	if _, err := scheduler.cron.AddFunc(scheduler.expression, scheduler.Collect); err != nil {
		return err
	}

	scheduler.cron.Start()
	log.Info(msg.GetMessage("schedule.collect-registered", scheduler.expression))

	if scheduler.runOnStart {
		scheduler.wg.Add(1)
		go func() {
			defer scheduler.wg.Done()
			scheduler.Collect()
		}()
	}
	return nil
}

// Collect runs one collection with a fresh request id.
func (scheduler *CollectScheduler) Collect() {
	requestID := uuid.New().String()
	log.Info(msg.GetMessage("schedule.collect-trigger", requestID), zap.String("request_id", requestID))

	summary, _ := scheduler.useCase.Run(scheduler.ctx, requestID)
	if summary != nil {
		log.Info(msg.GetMessage("schedule.collect-result", requestID, summary.Status),
			zap.String("request_id", requestID),
			zap.String("status", string(summary.Status)))
	}
}

// Stop cancels a running collection and waits for the cron loop to finish.
func (scheduler *CollectScheduler) Stop() {
	scheduler.cancel()
	<-scheduler.cron.Stop().Done()
	scheduler.wg.Wait()
}
