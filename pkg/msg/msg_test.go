package msg

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMessages = `
collect:
  start: "Starting data collection..."
  appended: "Added {0} new records to {1}"
  summary: "Run {0}"
`

func TestGetMessage(t *testing.T) {
	require.NoError(t, InitFromBytes([]byte(testMessages)))

	tests := []struct {
		name string
		key  string
		args []interface{}
		want string
	}{
		{name: "no placeholders", key: "collect.start", want: "Starting data collection..."},
		{name: "primitive args", key: "collect.appended", args: []interface{}{4, "/app/data/x.csv"}, want: "Added 4 new records to /app/data/x.csv"},
		{name: "struct arg as json", key: "collect.summary", args: []interface{}{struct {
			Appended int `json:"appended"`
		}{Appended: 2}}, want: `Run {"appended":2}`},
		{name: "duration arg", key: "collect.summary", args: []interface{}{1500 * time.Millisecond}, want: "Run 1.5s"},
		{name: "error arg", key: "collect.summary", args: []interface{}{fmt.Errorf("fetch: %w", errors.New("timeout"))}, want: "Run fetch: timeout"},
		{name: "nil arg", key: "collect.summary", args: []interface{}{nil}, want: "Run "},
		{name: "missing key", key: "collect.unknown", want: "Message not found: collect.unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetMessage(tt.key, tt.args...))
		})
	}
}
