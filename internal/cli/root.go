// Package cli implements the seriesmark CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/seriesmark/internal/config"
	"github.com/rcliao/seriesmark/internal/logging"
	"github.com/rcliao/seriesmark/internal/sharecode"
	"github.com/rcliao/seriesmark/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string

	cfg    *config.Config
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "seriesmark",
	Short: "Mark, share and compare film-series picks",
	Long: "Import a film series' showtimes, mark the movies you want to see, " +
		"send friends a short link with your picks, and compare lists.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = logger.Sync() },
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $SERIESMARK_DB, config db_path or ~/.seriesmark/seriesmark.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $SERIESMARK_CONFIG or ~/.config/seriesmark/config.toml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "auto", "Output format: json, text or auto (text on a terminal)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		p, err := config.ExpandPath(dbPath)
		if err != nil {
			return err
		}
		c.DBPath = p
	}
	switch formatFlag {
	case "json", "text", "auto":
	default:
		return fmt.Errorf("invalid format %q (valid: json, text, auto)", formatFlag)
	}

	l, err := logging.New(c.Logging.Level, c.Logging.Format)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func getDBPath() string {
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath(), logger)
}

func newCodec() *sharecode.Codec {
	return sharecode.New(logger)
}

// seriesFlag returns --series, falling back to the configured default.
func seriesFlag(cmd *cobra.Command) string {
	s, _ := cmd.Flags().GetString("series")
	if s == "" {
		s = cfg.DefaultSeries
	}
	if s == "" {
		exitErr("series", fmt.Errorf("--series is required (or set default_series in config)"))
	}
	return s
}

// userFlag returns --user, falling back to the configured default.
func userFlag(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	if u == "" {
		u = cfg.DefaultUser
	}
	if u == "" {
		exitErr("user", fmt.Errorf("--user is required (or set default_user in config)"))
	}
	return u
}

func addSeriesFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("series", "s", "", "Series name (default: config default_series)")
}

func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "User name or id (default: config default_user)")
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
