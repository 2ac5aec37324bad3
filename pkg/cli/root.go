package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/getmockd/tempoid/pkg/cliconfig"
	"github.com/getmockd/tempoid/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput bool
	logLevel   string
	logFormat  string
	configPath string

	// Effective configuration and logger, set before any subcommand runs
	cfg    *cliconfig.CLIConfig
	logger = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tempoid",
	Short: "tempoid generates time-sortable random identifiers",
	Long: `tempoid generates identifiers made of a time segment followed by a random
segment. The time segment encodes the current Unix time in milliseconds in the
chosen alphabet, so identifiers from an ascending alphabet sort by creation
time. The random segment is drawn without bias from a secure entropy pool.

Configuration can be provided via flags, TEMPOID_* environment variables, or
YAML config files (.tempoidrc.yaml in the working directory, or config.yaml
in the tempoid directory under the user config directory).`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
	PersistentPreRunE: loadConfig,
}

// loadConfig resolves the layered configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("json") {
		loaded.JSON = jsonOutput
		loaded.Sources["json"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
		loaded.Sources["logLevel"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-format") {
		loaded.LogFormat = logFormat
		loaded.Sources["logFormat"] = cliconfig.SourceFlag
	}

	cfg = loaded
	logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "command", cmd.Name(), "configFile", cfg.ConfigFile)
	return nil
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Main())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file to load after the local one (env: TEMPOID_CONFIG)")
}
