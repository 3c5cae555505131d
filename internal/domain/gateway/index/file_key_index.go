package index

import (
	"context"

	"lindas-hydro/internal/domain/gateway/file"
)

// FileKeyIndex re-reads the observation file on every lookup.
type FileKeyIndex struct {
	store file.ObservationStore
}

var _ KeyIndex = (*FileKeyIndex)(nil)

func NewFileKeyIndex(store file.ObservationStore) *FileKeyIndex {
	return &FileKeyIndex{store: store}
}

func (index *FileKeyIndex) Known(_ context.Context, candidates []string) (map[string]struct{}, error) {
	keys, err := index.store.Keys()
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{})
	for _, candidate := range candidates {
		if _, ok := keys[candidate]; ok {
			known[candidate] = struct{}{}
		}
	}
	return known, nil
}

// Add is a no-op, appending to the file already records the keys.
func (index *FileKeyIndex) Add(context.Context, []string) error {
	return nil
}
