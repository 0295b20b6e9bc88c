package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aitorfernandez/puid/internal/config"
	"github.com/aitorfernandez/puid/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "puid",
	Short: "Generate short, practically-unique prefixed IDs",
	Long: `Puid generates short identifiers in the style of ch_xxxx tokens.

Each ID is a prefix, an underscore, and a body made of:
  - the current time in milliseconds (base-36)
  - a per-process sequence counter (base-36)
  - the process ID (base-36)
  - random alphanumeric characters

Defaults for every command can be set in .puid.toml.

Example:
  puid generate foo           # foo_l2ok01bl0yq2i2ElC7zW
  puid generate bar -n 24 -c 3`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var (
	rootConfigPath string
	rootLogLevel   string
	rootLogFormat  string

	projectConfig *config.ProjectConfig
	logger        *slog.Logger
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", config.DefaultFileName, "Path to the project config file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format: text or json (default from config)")
}

// loadSettings reads the project config and builds the logger before any
// subcommand runs.
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}

	levelName := cfg.Log.Level
	if rootLogLevel != "" {
		levelName = rootLogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	formatName := cfg.Log.Format
	if rootLogFormat != "" {
		formatName = rootLogFormat
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return err
	}

	projectConfig = cfg
	logger = logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})
	logger.Debug("loaded settings", "config", rootConfigPath, "level", level.String())

	return nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func requireValue(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required (pass a flag or set it in .puid.toml)", name)
	}
	return nil
}
