package schedule

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"lindas-hydro/internal/domain/gateway/file"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

// FileStatsScheduler periodically logs the size of the observation file.
type FileStatsScheduler struct {
	scheduler gocron.Scheduler
	store     file.ObservationStore
	interval  time.Duration
}

func NewFileStatsScheduler(store file.ObservationStore, interval time.Duration) (*FileStatsScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &FileStatsScheduler{scheduler: scheduler, store: store, interval: interval}, nil
}

func (s *FileStatsScheduler) InitFileStatsScheduleTasks() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.LogStats),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Info(msg.GetMessage("schedule.stats-registered", s.interval))
	return nil
}

func (s *FileStatsScheduler) LogStats() {
	stats, err := s.store.Stats()
	if err != nil {
		log.Warn(msg.GetMessage("storage.stats-fail", err))
		return
	}
	log.Infow(msg.GetMessage("storage.stats", stats.Path, stats.SizeBytes, stats.Rows, stats.ModifiedAt.Format(time.RFC3339)),
		"size_bytes", stats.SizeBytes,
		"rows", stats.Rows)
}

func (s *FileStatsScheduler) Stop() error {
	return s.scheduler.Shutdown()
}
