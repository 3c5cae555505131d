package stations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	codeColumn = "lhg_code"
	urlColumn  = "lhg_url"
	riverCode  = "lhg_fluss"
)

// RiverStationCodes reads a latin1 encoded station list and returns the codes of river stations
// in file order. The code is the lhg_url value without its ".htm" suffix.
func RiverStationCodes(r io.Reader) ([]int, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty station list")
	}
	if err != nil {
		return nil, fmt.Errorf("fail to read station list header: %w", err)
	}

	codeIndex, urlIndex := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case codeColumn:
			codeIndex = i
		case urlColumn:
			urlIndex = i
		}
	}
	if codeIndex < 0 || urlIndex < 0 {
		return nil, fmt.Errorf("station list must have %s and %s columns", codeColumn, urlColumn)
	}

	codes := make([]int, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return codes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("fail to read station list: %w", err)
		}
		if codeIndex >= len(record) || urlIndex >= len(record) || record[codeIndex] != riverCode {
			continue
		}

		value := strings.ReplaceAll(record[urlIndex], ".htm", "")
		code, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid station code %q on line %d: %w", record[urlIndex], line, err)
		}
		codes = append(codes, code)
	}
}
