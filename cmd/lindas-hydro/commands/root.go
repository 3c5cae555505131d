package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lindas-hydro/configs"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
	"lindas-hydro/pkg/resource"
)

// exitError carries a process exit code without printing anything else.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var rootCmd = &cobra.Command{
	Use:           "lindas-hydro",
	Short:         "lindas-hydro collects Swiss hydrological gauge observations from LINDAS into a CSV file.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.Load(); err != nil {
			return err
		}
		return log.SetLevel(resource.GetStringOrDefault("app.log-level", "debug"))
	},
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd, scheduleCmd, stationsCmd, showCmd)
}

// ExecuteContext runs the CLI and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	defer log.Sync()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	log.Error(msg.GetMessage("app.command-fail", err))
	fmt.Fprintln(os.Stderr, err)
	return 1
}
