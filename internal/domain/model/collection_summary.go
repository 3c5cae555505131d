package model

import (
	"time"

	"lindas-hydro/internal/domain/entity"
)

// CollectionSummary is the outcome of one collection run as reported to callers.
type CollectionSummary struct {
	RunID      string           `json:"runId"`
	Status     entity.RunStatus `json:"status"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Fetched    int              `json:"fetched"`
	Appended   int              `json:"appended"`
	Skipped    int              `json:"skipped"`
	OutputFile string           `json:"outputFile"`
	Error      string           `json:"error,omitempty"`
}

// Run converts the summary to its audit entity.
func (s CollectionSummary) Run() entity.CollectionRun {
	return entity.CollectionRun{
		ID:         s.RunID,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Status:     s.Status,
		Fetched:    s.Fetched,
		Appended:   s.Appended,
		Skipped:    s.Skipped,
		Error:      s.Error,
	}
}

// SummaryFromRun rebuilds a summary from its audit entity. The output file is not audited.
func SummaryFromRun(run entity.CollectionRun) CollectionSummary {
	return CollectionSummary{
		RunID:      run.ID,
		Status:     run.Status,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Fetched:    run.Fetched,
		Appended:   run.Appended,
		Skipped:    run.Skipped,
		Error:      run.Error,
	}
}

// CollectionAccepted is returned when a run is triggered asynchronously.
type CollectionAccepted struct {
	RunID string `json:"runId"`
}

// FileStats describes the observation file on disk.
type FileStats struct {
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"sizeBytes"`
	Rows       int64     `json:"rows"`
	ModifiedAt time.Time `json:"modifiedAt"`
}
