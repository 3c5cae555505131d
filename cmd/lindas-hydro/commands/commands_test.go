package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/gateway/file"
)

func execute(t *testing.T, args ...string) (string, int) {
	t.Helper()
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PROPERTIES_FILE_PATH", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("MESSAGES_FILE_PATH", filepath.Join(t.TempDir(), "missing.yml"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	code := ExecuteContext(context.Background())
	return out.String(), code
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HYDRO_DATA_DIR", dir)

	store, err := file.NewCSVObservationStore(dir, file.DefaultFileName)
	require.NoError(t, err)
	require.NoError(t, store.Append([]entity.Observation{
		{Timestamp: "2024-05-01T10:00:00+02:00", StationID: "older-station", Discharge: "12.5"},
		{Timestamp: "2024-05-01T10:00:00+02:00", StationID: "newer-station", Discharge: "3.1"},
	}))

	out, code := execute(t, "show", "--rows", "1")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "newer-station")
	assert.NotContains(t, out, "older-station")
	assert.Contains(t, out, "station_id")
}

func TestStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.csv")
	require.NoError(t, os.WriteFile(path, []byte("lhg_code,lhg_url\nlhg_fluss,2099.htm\nlhg_see,2043.htm\n"), 0o644))

	out, code := execute(t, "stations", path)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "2099")
	assert.Contains(t, out, "Total number of river stations: 1")
}

func TestStations_NoneFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.csv")
	require.NoError(t, os.WriteFile(path, []byte("lhg_code,lhg_url\nlhg_see,2043.htm\n"), 0o644))

	_, code := execute(t, "stations", path)

	assert.Equal(t, 1, code)
}

func TestCollect_InvalidSiteCode(t *testing.T) {
	for _, codes := range []string{"2044,abc", "2044,,2112", "0"} {
		t.Run(codes, func(t *testing.T) {
			t.Setenv("HYDRO_DATA_DIR", t.TempDir())
			t.Setenv("SITE_CODES", codes)

			_, code := execute(t, "collect")

			assert.Equal(t, 1, code)
		})
	}
}
