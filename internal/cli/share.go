package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/shareurl"
)

func init() {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a share link carrying a user's marks",
		Run:   runShare,
	}
	addSeriesFlag(cmd)
	addUserFlag(cmd)
	cmd.Flags().String("base", "", "Page the link points at (default: config base_url)")

	RootCmd.AddCommand(cmd)
}

type shareOutput struct {
	Series string `json:"series"`
	User   string `json:"user"`
	UserID string `json:"user_id"`
	Marks  int    `json:"marks"`
	Token  string `json:"token"`
	URL    string `json:"url"`
}

func runShare(cmd *cobra.Command, args []string) {
	series := seriesFlag(cmd)
	userRef := userFlag(cmd)
	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		base = cfg.BaseURL
	}

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

	token := newCodec().Encode(reactions, cat)
	link, err := shareurl.Build(base, shareurl.Link{Series: series, UserID: u.ID, Token: token})
	if err != nil {
		exitErr("share", err)
	}

	out := shareOutput{
		Series: series,
		User:   u.Name,
		UserID: u.ID,
		Marks:  len(reactions.Sparse()),
		Token:  token,
		URL:    link,
	}
	if wantText(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), out.URL)
		return
	}
	printJSON(cmd, out)
}
