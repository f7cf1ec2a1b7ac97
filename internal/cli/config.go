package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/config"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample config file",
		Args:  cobra.MaximumNArgs(1),
		// The config being created may not exist or parse yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run:               runConfigInit,
	}
	initCmd.Flags().Bool("overwrite", false, "Replace an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Run:   runConfigShow,
	}

	configCmd.AddCommand(initCmd, showCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	path := "~/.config/seriesmark/config.toml"
	if len(args) == 1 {
		path = args[0]
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		exitErr("config init", err)
	}
	if _, err := os.Stat(resolved); err == nil && !overwrite {
		exitErr("config init", fmt.Errorf("%s already exists (use --overwrite)", resolved))
	}
	if err := config.WriteSample(resolved); err != nil {
		exitErr("config init", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q}`+"\n", resolved)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	printJSON(cmd, cfg)
}
