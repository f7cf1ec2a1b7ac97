package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reactions as JSON",
		Long:  "Export every user's reactions as JSON. Filter by series with -s.",
		Run:   runExport,
	}

	cmd.Flags().StringP("series", "s", "", "Filter by series")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	series, _ := cmd.Flags().GetString("series")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sets, err := s.ExportReactions(cmd.Context(), series)
	if err != nil {
		exitErr("export", err)
	}
	if sets == nil {
		sets = []store.ReactionSet{}
	}
	printJSON(cmd, sets)
}
