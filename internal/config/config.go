// Package config loads seriesmark settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath = "~/.config/seriesmark/config.toml"
	defaultDBPath     = "~/.seriesmark/seriesmark.db"
	defaultBaseURL    = "https://localhost/list"
	defaultLogLevel   = "warn"
	defaultLogFormat  = "console"
)

// Environment overrides.
const (
	EnvConfig = "SERIESMARK_CONFIG"
	EnvDB     = "SERIESMARK_DB"
)

// Logging contains configuration for diagnostic output on stderr.
type Logging struct {
	Level  string `toml:"level" json:"level"`   // debug, info, warn, error
	Format string `toml:"format" json:"format"` // console or json
}

// Config holds every seriesmark setting.
type Config struct {
	DBPath        string  `toml:"db_path" json:"db_path"`
	BaseURL       string  `toml:"base_url" json:"base_url"`
	DefaultSeries string  `toml:"default_series" json:"default_series"`
	DefaultUser   string  `toml:"default_user" json:"default_user"`
	Logging       Logging `toml:"logging" json:"logging"`
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DBPath:  defaultDBPath,
		BaseURL: defaultBaseURL,
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads the config at path, falling back to $SERIESMARK_CONFIG and then
// the default location. A missing file at the default location is not an
// error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigPath
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	if env := os.Getenv(EnvDB); env != "" {
		cfg.DBPath = env
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.DefaultSeries = strings.TrimSpace(c.DefaultSeries)
	c.DefaultUser = strings.TrimSpace(c.DefaultUser)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	db, err := ExpandPath(c.DBPath)
	if err != nil {
		return err
	}
	c.DBPath = db
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.BaseURL == "" {
		return errors.New("base_url must be set")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is invalid (valid: debug, info, warn, error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is invalid (valid: console, json)", c.Logging.Format)
	}
	return nil
}

// ExpandPath resolves a leading "~" and makes the path absolute.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// WriteSample writes a commented sample configuration to path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

const sampleConfig = `# seriesmark configuration

# SQLite database holding catalogs, users and reactions.
db_path = "~/.seriesmark/seriesmark.db"

# Page that share links point at. ?s=, ?u= and ?r= are appended.
base_url = "https://localhost/list"

# Used when -s / -u are omitted.
default_series = ""
default_user = ""

[logging]
level = "warn"     # debug, info, warn, error
format = "console" # console or json
`
