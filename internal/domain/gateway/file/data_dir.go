package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultFileName = "lindas_hydro_data.csv"
	containerDir    = "/app/data"
)

var dockerEnvFile = "/.dockerenv"

// ResolveDataDir picks the configured directory, then /app/data inside a container, then ./data.
// The directory is created with its parents.
func ResolveDataDir(configured string) (string, error) {
	dir := strings.TrimSpace(configured)
	if dir == "" {
		if _, err := os.Stat(dockerEnvFile); err == nil {
			dir = containerDir
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("fail to resolve working directory: %w", err)
			}
			dir = filepath.Join(cwd, "data")
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("fail to create data directory %s: %w", dir, err)
	}
	return dir, nil
}
