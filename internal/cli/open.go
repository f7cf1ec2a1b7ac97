package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/model"
	"github.com/rcliao/seriesmark/internal/shareurl"
	"github.com/rcliao/seriesmark/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "open [link-or-token]",
		Short: "Show the marks carried by a share link",
		Long: "Decode a share link against the local catalog. Malformed links show nothing; " +
			"marks on movies missing from the local catalog are skipped.",
		Args: cobra.ExactArgs(1),
		Run:  runOpen,
	}
	addSeriesFlag(cmd)
	cmd.Flags().String("save-as", "", "Store the decoded marks under this user name")
	cmd.Flags().Bool("replace", false, "With --save-as, drop that user's existing marks first")

	RootCmd.AddCommand(cmd)
}

type openOutput struct {
	Series    string            `json:"series"`
	UserID    string            `json:"user_id,omitempty"`
	Reactions model.ReactionMap `json:"reactions"`
	Skipped   int               `json:"skipped"`
	SavedAs   string            `json:"saved_as,omitempty"`
	Saved     int               `json:"saved,omitempty"`
}

// resolveLink parses a link and picks its series, preferring the one in the link.
func resolveLink(cmd *cobra.Command, raw string) (shareurl.Link, string) {
	link, err := shareurl.Parse(raw)
	if err != nil {
		exitErr("parse link", err)
	}
	series := link.Series
	if series == "" {
		series = seriesFlag(cmd)
	}
	return link, series
}

func runOpen(cmd *cobra.Command, args []string) {
	link, series := resolveLink(cmd, args[0])
	saveAs, _ := cmd.Flags().GetString("save-as")
	replace, _ := cmd.Flags().GetBool("replace")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	cat, err := s.Catalog(cmd.Context(), series)
	if err != nil {
		exitErr("catalog", err)
	}
	res := newCodec().DecodeResult(link.Token, cat)

	out := openOutput{
		Series:    series,
		UserID:    link.UserID,
		Reactions: res.Reactions,
		Skipped:   res.Skipped,
	}

	if saveAs != "" {
		u, err := s.EnsureUser(cmd.Context(), saveAs)
		if err != nil {
			exitErr("user", err)
		}
		n, err := s.SaveReactions(cmd.Context(), store.SaveReactionsParams{
			UserID:    u.ID,
			Series:    series,
			Reactions: res.Reactions,
			Replace:   replace,
		})
		if err != nil {
			exitErr("save reactions", err)
		}
		out.SavedAs, out.Saved = u.Name, n
	}

	if !wantText(cmd) {
		printJSON(cmd, out)
		return
	}
	printReactionTable(cmd, cat, res.Reactions, false)
	if res.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d marks refer to movies not in this catalog\n", res.Skipped)
	}
	if out.SavedAs != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d marks as %s\n", out.Saved, out.SavedAs)
	}
}
