package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/model"
)

func init() {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a user",
		Args:  cobra.MinimumNArgs(1),
		Run:   runUserAdd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Run:   runUserList,
	}

	userCmd.AddCommand(addCmd, listCmd)
	RootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := s.AddUser(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		exitErr("add user", err)
	}
	if !wantText(cmd) {
		printJSON(cmd, u)
		return
	}
	printUsers(cmd, []model.User{*u})
}

func runUserList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	users, err := s.ListUsers(cmd.Context())
	if err != nil {
		exitErr("list users", err)
	}
	printUsers(cmd, users)
}

func printUsers(cmd *cobra.Command, users []model.User) {
	if !wantText(cmd) {
		if users == nil {
			users = []model.User{}
		}
		printJSON(cmd, users)
		return
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.CreatedAt.Format("2006-01-02")})
	}
	printTable(cmd, []string{"ID", "Name", "Created"}, rows, nil)
}
