package api

import (
	"context"

	"lindas-hydro/internal/domain/model/external"
)

// HydroGateway runs SPARQL queries against the LINDAS endpoint
type HydroGateway interface {
	// FetchObservations posts query and returns the decoded SELECT result.
	// Non-2xx answers surface as *http.StatusError after retries are exhausted.
	FetchObservations(ctx context.Context, query string) (*external.ResultSet, error)
}
