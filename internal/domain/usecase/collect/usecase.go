package collect

import (
	"context"

	"lindas-hydro/internal/domain/model"
)

type UseCase interface {
	// Run performs one fetch, assemble, dedup and append cycle and reports its outcome.
	// The returned error is set only for FAILED runs, the summary is always returned.
	Run(ctx context.Context, runID string) (*model.CollectionSummary, error)

	// Summary returns the outcome of the last run, nil before the first one
	Summary() *model.CollectionSummary
}
