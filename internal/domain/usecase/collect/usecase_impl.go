package collect

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/gateway/api"
	"lindas-hydro/internal/domain/gateway/cache"
	"lindas-hydro/internal/domain/gateway/db"
	"lindas-hydro/internal/domain/gateway/file"
	"lindas-hydro/internal/domain/gateway/index"
	"lindas-hydro/internal/domain/gateway/queue"
	"lindas-hydro/internal/domain/model"
	"lindas-hydro/internal/domain/query"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

// Sinks are the optional secondary destinations of new observations. Nil fields are disabled.
type Sinks struct {
	Observations db.ObservationGateway
	Latest       cache.LatestCache
	Queue        queue.Sender
	QueueName    string
	Runs         db.CollectionRunGateway
}

type collectUseCase struct {
	query      string
	vocabulary query.Vocabulary
	hydro      api.HydroGateway
	store      file.ObservationStore
	keys       index.KeyIndex
	sinks      Sinks
	now        func() time.Time

	runMutex  sync.Mutex
	lastMutex sync.RWMutex
	last      *model.CollectionSummary
}

func NewCollectUseCase(sparql string, vocabulary query.Vocabulary, hydro api.HydroGateway, store file.ObservationStore, keys index.KeyIndex, sinks Sinks) UseCase {
	return &collectUseCase{
		query:      sparql,
		vocabulary: vocabulary,
		hydro:      hydro,
		store:      store,
		keys:       keys,
		sinks:      sinks,
		now:        time.Now,
	}
}

func (uc *collectUseCase) Run(ctx context.Context, runID string) (*model.CollectionSummary, error) {
	uc.runMutex.Lock()
	defer uc.runMutex.Unlock()

	requestID := zap.String("request_id", runID)
	startedAt := uc.now()
	summary := &model.CollectionSummary{
		RunID:      runID,
		StartedAt:  startedAt,
		OutputFile: uc.store.Path(),
	}

	log.Info(msg.GetMessage("collect.start"), requestID)

	err := uc.collect(ctx, summary, startedAt.Local().Format(entity.CollectionTimeLayout), requestID)
	if err != nil {
		summary.Status = entity.RunFailed
		summary.Error = err.Error()
		log.Error(msg.GetMessage("collect.failed", err), requestID, zap.Error(err))
	}

	summary.FinishedAt = uc.now()
	uc.audit(summary, requestID)

	uc.lastMutex.Lock()
	uc.last = summary
	uc.lastMutex.Unlock()

	return summary, err
}

func (uc *collectUseCase) collect(ctx context.Context, summary *model.CollectionSummary, collectionTime string, requestID zap.Field) error {
	release, err := uc.store.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := release(); unlockErr != nil {
			log.Warn(unlockErr.Error(), requestID)
		}
	}()

	results, err := uc.hydro.FetchObservations(ctx, uc.query)
	if err != nil {
		log.Error(msg.GetMessage("collect.fetch-fail", err), requestID)
		return fmt.Errorf("fetch observations: %w", err)
	}

	observations := Assemble(results, uc.vocabulary, collectionTime)
	summary.Fetched = len(observations)
	if len(observations) == 0 {
		summary.Status = entity.RunNoData
		log.Warn(msg.GetMessage("collect.no-data"), requestID)
		return nil
	}

	fresh, skipped := uc.dedup(ctx, observations, requestID)
	summary.Skipped = skipped
	if skipped > 0 {
		log.Debug(msg.GetMessage("collect.skipped", skipped), requestID)
	}
	if len(fresh) == 0 {
		summary.Status = entity.RunNoNewRecords
		log.Warn(msg.GetMessage("collect.no-new"), requestID)
		return nil
	}

	if err = uc.store.Append(fresh); err != nil {
		return fmt.Errorf("append observations: %w", err)
	}
	summary.Appended = len(fresh)
	log.Info(msg.GetMessage("collect.appended", len(fresh), uc.store.Path()), requestID, zap.Int("appended", len(fresh)))

	uc.fanOut(ctx, fresh, requestID)

	summary.Status = entity.RunSuccess
	log.Info(msg.GetMessage("collect.completed"), requestID)
	return nil
}

// dedup drops observations already collected or repeated within the batch.
// An unreadable index counts as empty so the run still goes on.
func (uc *collectUseCase) dedup(ctx context.Context, observations []entity.Observation, requestID zap.Field) ([]entity.Observation, int) {
	candidates := make([]string, 0, len(observations))
	for _, observation := range observations {
		candidates = append(candidates, observation.Key())
	}

	known, err := uc.keys.Known(ctx, candidates)
	if err != nil {
		log.Error(msg.GetMessage("collect.keys-fail", err), requestID)
		known = map[string]struct{}{}
	}

	fresh := make([]entity.Observation, 0, len(observations))
	seen := make(map[string]struct{}, len(observations))
	for _, observation := range observations {
		key := observation.Key()
		if _, ok := known[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, observation)
	}
	return fresh, len(observations) - len(fresh)
}

// fanOut feeds the secondary sinks in parallel; their failures never fail the run.
func (uc *collectUseCase) fanOut(ctx context.Context, fresh []entity.Observation, requestID zap.Field) {
	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				log.Warn(msg.GetMessage("collect.sink-fail", name, err), requestID, zap.String("sink", name))
			}
		}()
	}

	run("key-index", func() error {
		keys := make([]string, 0, len(fresh))
		for _, observation := range fresh {
			keys = append(keys, observation.Key())
		}
		return uc.keys.Add(ctx, keys)
	})

	if uc.sinks.Observations != nil {
		run("database", func() error {
			_, err := uc.sinks.Observations.Upsert(ctx, fresh)
			return err
		})
	}

	if uc.sinks.Latest != nil {
		run("cache", func() error {
			return uc.sinks.Latest.Put(ctx, fresh)
		})
	}

	if uc.sinks.Queue != nil {
		run("queue", func() error {
			messages := make([]queue.BatchMessage, 0, len(fresh))
			for i, observation := range fresh {
				messages = append(messages, queue.BatchMessage{MessageID: "obs-" + strconv.Itoa(i), Body: observation})
			}
			result, err := uc.sinks.Queue.SendMessageBatch(ctx, uc.sinks.QueueName, messages)
			if err != nil {
				return err
			}
			if len(result.Failed) > 0 {
				return fmt.Errorf("%d of %d messages were not sent", len(result.Failed), len(messages))
			}
			return nil
		})
	}

	wg.Wait()
}

func (uc *collectUseCase) audit(summary *model.CollectionSummary, requestID zap.Field) {
	if uc.sinks.Runs == nil {
		return
	}
	if err := uc.sinks.Runs.Save(summary.Run()); err != nil {
		log.Warn(msg.GetMessage("collect.audit-fail", summary.RunID, err), requestID)
	}
}

// Summary falls back to the audit trail until this process has run a collection.
func (uc *collectUseCase) Summary() *model.CollectionSummary {
	uc.lastMutex.RLock()
	last := uc.last
	uc.lastMutex.RUnlock()

	if last != nil {
		summary := *last
		return &summary
	}
	if uc.sinks.Runs == nil {
		return nil
	}

	run, err := uc.sinks.Runs.Last()
	if err != nil {
		log.Warn(msg.GetMessage("collect.audit-read-fail", err))
		return nil
	}
	if run == nil {
		return nil
	}
	summary := model.SummaryFromRun(*run)
	summary.OutputFile = uc.store.Path()
	return &summary
}
