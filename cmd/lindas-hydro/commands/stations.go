package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lindas-hydro/internal/domain/usecase/stations"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

var stationsCmd = &cobra.Command{
	Use:   "stations <csv file>",
	Short: "Lists the river station codes of a latin1 encoded FOEN station list.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		codes, err := stations.RiverStationCodes(f)
		if err != nil {
			return err
		}
		if len(codes) == 0 {
			log.Warn(msg.GetMessage("stations.none"))
			return exitError{code: 1}
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"#", "Station code"})
		for i, code := range codes {
			t.AppendRow(table.Row{i + 1, code})
		}
		t.AppendFooter(table.Row{"Total", len(codes)})
		t.Render()

		log.Info(msg.GetMessage("stations.found", len(codes)))
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal number of river stations: %d\n", len(codes))
		return nil
	},
}
