package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lindas-hydro/internal/domain/entity"
)

var showRows int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the most recent rows of the output file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}

		observations, err := store.Tail(showRows)
		if err != nil {
			return err
		}

		header := make(table.Row, 0, len(entity.CSVHeader))
		for _, column := range entity.CSVHeader {
			header = append(header, column)
		}

		t := newTable(cmd.OutOrStdout())
		t.SetTitle(store.Path())
		t.AppendHeader(header)
		for _, observation := range observations {
			row := make(table.Row, 0, len(header))
			for _, value := range observation.Record() {
				row = append(row, value)
			}
			t.AppendRow(row)
		}
		t.Render()
		return nil
	},
}

func init() {
	showCmd.Flags().IntVarP(&showRows, "rows", "n", 20, "number of rows to print, newest first")
}
