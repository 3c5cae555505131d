package file

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/model"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

type CSVObservationStore struct {
	path string
}

var _ ObservationStore = (*CSVObservationStore)(nil)

// NewCSVObservationStore opens dir/fileName, creating it with the header row when missing.
func NewCSVObservationStore(dir string, fileName string) (*CSVObservationStore, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}
	store := &CSVObservationStore{path: filepath.Join(dir, fileName)}
	if err := store.ensureFile(); err != nil {
		return nil, err
	}
	return store, nil
}

func (store *CSVObservationStore) Path() string {
	return store.path
}

func (store *CSVObservationStore) Lock() (func() error, error) {
	return lockFile(store.path + ".lock")
}

func (store *CSVObservationStore) ensureFile() error {
	if _, err := os.Stat(store.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("fail to stat %s: %w", store.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("fail to create %s: %w", filepath.Dir(store.path), err)
	}

	f, err := os.OpenFile(store.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fail to create %s: %w", store.path, err)
	}

	w := csv.NewWriter(f)
	_ = w.Write(entity.CSVHeader)
	w.Flush()
	if err = errors.Join(w.Error(), f.Sync(), f.Close()); err != nil {
		return fmt.Errorf("fail to write header to %s: %w", store.path, err)
	}

	log.Info(msg.GetMessage("storage.initialized", store.path))
	return nil
}

func (store *CSVObservationStore) Append(observations []entity.Observation) error {
	if len(observations) == 0 {
		return nil
	}
	if err := store.ensureFile(); err != nil {
		return err
	}

	f, err := os.OpenFile(store.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("fail to open %s: %w", store.path, err)
	}

	w := csv.NewWriter(f)
	for _, observation := range observations {
		_ = w.Write(observation.Record())
	}
	w.Flush()

	if err = errors.Join(w.Error(), f.Sync(), f.Close()); err != nil {
		return fmt.Errorf("fail to append to %s: %w", store.path, err)
	}
	return nil
}

func (store *CSVObservationStore) Keys() (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := store.scan(func(observation entity.Observation) {
		keys[observation.Key()] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (store *CSVObservationStore) Page(station string, page int, size int) ([]entity.Observation, int64, error) {
	var matched []entity.Observation
	err := store.scan(func(observation entity.Observation) {
		if station == "" || observation.StationID == station {
			matched = append(matched, observation)
		}
	})
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(matched))
	if page < 0 || size <= 0 || len(matched) == 0 || page > (len(matched)-1)/size {
		return []entity.Observation{}, total, nil
	}
	start := page * size
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	content := make([]entity.Observation, 0, end-start)
	for i := start; i < end; i++ {
		content = append(content, matched[len(matched)-1-i])
	}
	return content, total, nil
}

func (store *CSVObservationStore) Tail(n int) ([]entity.Observation, error) {
	content, _, err := store.Page("", 0, n)
	return content, err
}

func (store *CSVObservationStore) Latest() ([]entity.Observation, error) {
	latest := make(map[string]entity.Observation)
	err := store.scan(func(observation entity.Observation) {
		latest[observation.StationID] = observation
	})
	if err != nil {
		return nil, err
	}

	result := make([]entity.Observation, 0, len(latest))
	for _, observation := range latest {
		result = append(result, observation)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StationID < result[j].StationID
	})
	return result, nil
}

func (store *CSVObservationStore) Info() (*model.FileStats, error) {
	info, err := os.Stat(store.path)
	if err != nil {
		return nil, fmt.Errorf("fail to stat %s: %w", store.path, err)
	}
	return &model.FileStats{
		Path:       store.path,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	}, nil
}

func (store *CSVObservationStore) Stats() (*model.FileStats, error) {
	stats, err := store.Info()
	if err != nil {
		return nil, err
	}
	if err = store.scan(func(entity.Observation) { stats.Rows++ }); err != nil {
		return nil, err
	}
	return stats, nil
}

// scan reads every data row in file order. Columns are located by header name.
func (store *CSVObservationStore) scan(fn func(entity.Observation)) error {
	f, err := os.Open(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fail to open %s: %w", store.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fail to read header of %s: %w", store.path, err)
	}

	columns, err := columnIndexes(header)
	if err != nil {
		return fmt.Errorf("invalid header in %s: %w", store.path, err)
	}

	ordered := make([]string, len(entity.CSVHeader))
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("fail to read %s: %w", store.path, err)
		}

		for i, column := range columns {
			ordered[i] = ""
			if column >= 0 && column < len(record) {
				ordered[i] = record[column]
			}
		}
		fn(entity.ObservationFromRecord(ordered))
	}
}

func columnIndexes(header []string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}

	columns := make([]int, len(entity.CSVHeader))
	for i, name := range entity.CSVHeader {
		position, ok := positions[name]
		if !ok {
			position = -1
		}
		columns[i] = position
	}

	if columns[0] < 0 || columns[1] < 0 {
		return nil, fmt.Errorf("missing timestamp or station_id column")
	}
	return columns, nil
}
