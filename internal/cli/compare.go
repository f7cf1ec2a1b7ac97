package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/compare"
	"github.com/rcliao/seriesmark/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a user's marks with another user or a share link",
		Run:   runCompare,
	}
	addSeriesFlag(cmd)
	addUserFlag(cmd)
	cmd.Flags().String("with", "", "Other user name or id")
	cmd.Flags().String("link", "", "Share link or token to compare against")
	cmd.Flags().StringSlice("only", nil, "Show only these categories: strong, possible, disagree, pass, unreviewed")

	cmd.MarkFlagsMutuallyExclusive("with", "link")
	cmd.MarkFlagsOneRequired("with", "link")

	RootCmd.AddCommand(cmd)
}

type compareOutput struct {
	Series  string              `json:"series"`
	A       string              `json:"a"`
	B       string              `json:"b"`
	Items   []model.CompareItem `json:"items"`
	Summary compare.Summary     `json:"summary"`
}

func parseCategories(names []string) ([]model.Category, error) {
	valid := make(map[model.Category]bool, len(model.Categories))
	for _, c := range model.Categories {
		valid[c] = true
	}
	var out []model.Category
	for _, n := range names {
		c := model.Category(strings.TrimSpace(n))
		if !valid[c] {
			return nil, fmt.Errorf("invalid category %q", n)
		}
		out = append(out, c)
	}
	return out, nil
}

func runCompare(cmd *cobra.Command, args []string) {
	userRef := userFlag(cmd)
	with, _ := cmd.Flags().GetString("with")
	rawLink, _ := cmd.Flags().GetString("link")
	only, _ := cmd.Flags().GetStringSlice("only")

	cats, err := parseCategories(only)
	if err != nil {
		exitErr("compare", err)
	}

	var series string
	var token string
	if rawLink != "" {
		link, s := resolveLink(cmd, rawLink)
		series, token = s, link.Token
	} else if with != "" {
		series = seriesFlag(cmd)
	} else {
		exitErr("compare", errors.New("one of --with or --link is required"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	me, err := s.GetUser(cmd.Context(), userRef)
	if err != nil {
		exitErr("user", err)
	}
	cat, err := s.Catalog(cmd.Context(), series)
	if err != nil {
		exitErr("catalog", err)
	}
	mine, err := s.Reactions(cmd.Context(), me.ID, series)
	if err != nil {
		exitErr("reactions", err)
	}

	var theirs model.ReactionMap
	otherName := "link"
	if rawLink != "" {
		theirs = newCodec().Decode(token, cat)
	} else {
		other, err := s.GetUser(cmd.Context(), with)
		if err != nil {
			exitErr("user", err)
		}
		otherName = other.Name
		theirs, err = s.Reactions(cmd.Context(), other.ID, series)
		if err != nil {
			exitErr("reactions", err)
		}
	}

	items := compare.Categorize(cat.Movies(), mine, theirs)
	out := compareOutput{
		Series:  series,
		A:       me.Name,
		B:       otherName,
		Items:   compare.Filter(items, cats...),
		Summary: compare.Summarize(items),
	}

	if !wantText(cmd) {
		printJSON(cmd, out)
		return
	}

	rows := make([][]string, 0, len(out.Items))
	for _, it := range out.Items {
		rows = append(rows, []string{it.Movie.Title, string(it.A), string(it.B), string(it.Category)})
	}
	printTable(cmd, []string{"Title", out.A, out.B, "Category"}, rows, nil)

	var parts []string
	for _, c := range model.Categories {
		parts = append(parts, fmt.Sprintf("%s %d", c, out.Summary.Counts[c]))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (agreement %.0f%%)\n", strings.Join(parts, ", "), out.Summary.Agreement*100)
}
