package file

import (
	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/model"
)

// ObservationStore is the append-only observation file.
type ObservationStore interface {
	Path() string
	// Lock serialises collectors on this host until release is called.
	Lock() (release func() error, err error)
	Append(observations []entity.Observation) error
	Keys() (map[string]struct{}, error)
	// Page returns observations newest first, optionally for one station, and the total count.
	Page(station string, page int, size int) ([]entity.Observation, int64, error)
	Tail(n int) ([]entity.Observation, error)
	// Latest returns the last observation appended per station, ordered by station id.
	Latest() ([]entity.Observation, error)
	// Info stats the file without reading it, Rows is left at zero.
	Info() (*model.FileStats, error)
	// Stats is Info plus a row count, which scans the whole file.
	Stats() (*model.FileStats, error)
}
