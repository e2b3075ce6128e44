package cli

import (
	"fmt"
	"io"

	"github.com/VaticanUK/com-pact/pkg/cliconfig"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Show the effective configuration with the source of every value.
Secrets are never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		return printResult(w, cfg, func() {
			fmt.Fprintln(w, "Effective Configuration:")
			fmt.Fprintln(w)

			printConfigValue(w, "brokerUrl", cfg.BrokerURL, cfg.Sources["brokerUrl"])
			printConfigValue(w, "brokerToken", redact(cfg.BrokerToken), cfg.Sources["brokerToken"])
			printConfigValue(w, "providerUrl", cfg.ProviderURL, cfg.Sources["providerUrl"])
			printConfigValue(w, "stateSetupUrl", cfg.StateSetupURL, cfg.Sources["stateSetupUrl"])
			printConfigValue(w, "providerVersion", cfg.ProviderVersion, cfg.Sources["providerVersion"])
			printConfigValue(w, "timeout", cfg.Timeout, cfg.Sources["timeout"])
			printConfigValue(w, "publish", cfg.Publish, cfg.Sources["publish"])
			printConfigValue(w, "pactDir", cfg.PactDir, cfg.Sources["pactDir"])
			printConfigValue(w, "historyPath", cfg.HistoryPath, cfg.Sources["historyPath"])
			printConfigValue(w, "logLevel", cfg.LogLevel, cfg.Sources["logLevel"])
			printConfigValue(w, "logFormat", cfg.LogFormat, cfg.Sources["logFormat"])

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Sources loaded:")
			if globalPath, err := cliconfig.FindGlobalConfig(); err == nil && globalPath != "" {
				fmt.Fprintf(w, "  • %s (global)\n", globalPath)
			}
			if configPath != "" {
				fmt.Fprintf(w, "  • %s (local)\n", configPath)
			} else if localPath, err := cliconfig.FindLocalConfig(); err == nil && localPath != "" {
				fmt.Fprintf(w, "  • %s (local)\n", localPath)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// printConfigValue prints a config value with source annotation.
func printConfigValue(w io.Writer, name string, value any, source string) {
	if source == "" {
		source = cliconfig.SourceDefault
	}
	fmt.Fprintf(w, "  %-18s %v%s\n", name+":", value, formatSource(source))
}

// formatSource formats a source type for display.
func formatSource(source string) string {
	switch source {
	case cliconfig.SourceDefault:
		return "  (default)"
	case cliconfig.SourceEnv:
		return "  (env)"
	case cliconfig.SourceGlobal:
		return "  (global config)"
	case cliconfig.SourceLocal:
		return "  (local config)"
	case cliconfig.SourceFlag:
		return "  (flag)"
	default:
		return ""
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
