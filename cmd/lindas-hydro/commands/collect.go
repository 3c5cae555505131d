package commands

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Runs one collection cycle and appends new observations to the output file.",
	Args:  cobra.NoArgs,
	RunE:  runCollect,
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	log.Info(msg.GetMessage("app.start", cmd.Root().Name()))
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	summary, _ := app.collect.Run(ctx, uuid.New().String())
	if summary.Status == entity.RunFailed {
		return exitError{code: 1}
	}
	return nil
}
