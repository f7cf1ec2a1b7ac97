package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/store"
)

func init() {
	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Series management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all imported series",
		Run:   runSeriesList,
	}

	seriesCmd.AddCommand(listCmd)
	RootCmd.AddCommand(seriesCmd)
}

func runSeriesList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	series, err := s.ListSeries(cmd.Context())
	if err != nil {
		exitErr("list series", err)
	}

	if !wantText(cmd) {
		if series == nil {
			series = []store.SeriesInfo{}
		}
		printJSON(cmd, series)
		return
	}
	rows := make([][]string, 0, len(series))
	for _, si := range series {
		rows = append(rows, []string{si.Series, strconv.Itoa(si.Movies), strconv.Itoa(si.Reactions)})
	}
	printTable(cmd, []string{"Series", "Movies", "Reactions"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight})
}
