package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/catalog"
	"github.com/rcliao/seriesmark/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reactions",
		Short: "Show a user's marks for a series",
		Run:   runReactions,
	}
	addSeriesFlag(cmd)
	addUserFlag(cmd)
	cmd.Flags().Bool("all", false, "Include unmarked movies")

	RootCmd.AddCommand(cmd)
}

func runReactions(cmd *cobra.Command, args []string) {
	series := seriesFlag(cmd)
	userRef := userFlag(cmd)
	all, _ := cmd.Flags().GetBool("all")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := s.GetUser(cmd.Context(), userRef)
	if err != nil {
		exitErr("user", err)
	}
	cat, err := s.Catalog(cmd.Context(), series)
	if err != nil {
		exitErr("catalog", err)
	}
	reactions, err := s.Reactions(cmd.Context(), u.ID, series)
	if err != nil {
		exitErr("reactions", err)
	}

	if !wantText(cmd) {
		printJSON(cmd, reactions)
		return
	}
	printReactionTable(cmd, cat, reactions, all)
}

// printReactionTable lists marked movies (or every movie with all) in catalog order.
func printReactionTable(cmd *cobra.Command, cat *catalog.Catalog, reactions model.ReactionMap, all bool) {
	var rows [][]string
	for _, m := range cat.Movies() {
		r := reactions.Get(m.ID)
		if r == model.ReactionNone && !all {
			continue
		}
		rows = append(rows, []string{m.Title, yearString(m.Year), string(r)})
	}
	printTable(cmd, []string{"Title", "Year", "Reaction"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft})
}
