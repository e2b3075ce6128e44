package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/VaticanUK/com-pact/pkg/cliconfig"
	"github.com/VaticanUK/com-pact/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	logLevel   string
	logFormat  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// Resolved per invocation by loadSettings.
var (
	cfg     *cliconfig.CLIConfig
	logger  = logging.Nop()
	logFile io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "compact",
	Short: "compact verifies consumer-driven contracts against HTTP providers",
	Long: `compact replays the interactions recorded in Pact contracts against a
running provider and reports every mismatch, optionally publishing the
outcome back to a Pact Broker.

Configuration can be provided via flags, COMPACT_* environment variables,
a local .compactrc.yaml or the global ~/.config/compact/config.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logFile != nil {
			_ = logFile.Close()
			logFile = nil
		}
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if !silentError(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .compactrc.yaml in the current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadSettings layers configuration sources, applies the persistent flags
// on top and builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	loaded, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flagCfg := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	if cmd.Flags().Changed("log-level") {
		flagCfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		flagCfg.LogFormat = logFormat
	}
	if cmd.Flags().Changed("json") {
		flagCfg.JSON = jsonOutput
		flagCfg.SetFields["json"] = true
	}
	cliconfig.MergeConfig(loaded, flagCfg, cliconfig.SourceFlag)
	jsonOutput = loaded.JSON

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	l, err := newLogger(cmd.ErrOrStderr(), loaded)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newLogger(stderr io.Writer, c *cliconfig.CLIConfig) (*slog.Logger, error) {
	level := logging.ParseLevel(c.LogLevel)
	lc := logging.Config{
		Level:     level,
		Format:    logging.ParseFormat(c.LogFormat),
		Output:    stderr,
		AddSource: level == logging.LevelDebug,
	}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		lc.Tee = f
	}
	return logging.New(lc), nil
}
