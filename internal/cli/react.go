package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/model"
	"github.com/rcliao/seriesmark/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "react [movie-id reaction | movie-id=reaction...]",
		Short: "Mark movies yes, maybe, no or none",
		Long:  "Mark one or more movies. \"none\" clears a mark.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runReact,
	}
	addSeriesFlag(cmd)
	addUserFlag(cmd)

	RootCmd.AddCommand(cmd)
}

type reactionArg struct {
	MovieID  string         `json:"movie_id"`
	Reaction model.Reaction `json:"reaction"`
}

func parseReactionArgs(args []string) ([]reactionArg, error) {
	if len(args) == 2 && !strings.Contains(args[0], "=") && !strings.Contains(args[1], "=") {
		args = []string{args[0] + "=" + args[1]}
	}
	out := make([]reactionArg, 0, len(args))
	for _, a := range args {
		id, r, ok := strings.Cut(a, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("expected movie-id=reaction, got %q", a)
		}
		reaction, err := model.ParseReaction(r)
		if err != nil {
			return nil, err
		}
		out = append(out, reactionArg{MovieID: id, Reaction: reaction})
	}
	return out, nil
}

func runReact(cmd *cobra.Command, args []string) {
	series := seriesFlag(cmd)
	userRef := userFlag(cmd)

	marks, err := parseReactionArgs(args)
	if err != nil {
		exitErr("react", err)
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

	for _, m := range marks {
		err := s.SetReaction(cmd.Context(), store.SetReactionParams{
			UserID:   u.ID,
			Series:   series,
			MovieID:  m.MovieID,
			Reaction: m.Reaction,
		})
		if err != nil {
			exitErr("react", err)
		}
	}

	if wantText(cmd) {
		for _, m := range marks {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", m.MovieID, m.Reaction)
		}
		return
	}
	printJSON(cmd, map[string]any{"ok": true, "user": u.Name, "series": series, "marks": marks})
}
