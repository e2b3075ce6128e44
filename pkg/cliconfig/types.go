// Package cliconfig provides configuration types and loading for the compact CLI.
package cliconfig

// CLIConfig represents the complete configuration for the compact CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.compactrc.yaml in current directory, or --config)
// 4. Global config file (~/.config/compact/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Broker settings
	BrokerURL      string `yaml:"brokerUrl,omitempty" json:"brokerUrl,omitempty"`
	BrokerToken    string `yaml:"brokerToken,omitempty" json:"-"`
	BrokerUsername string `yaml:"brokerUsername,omitempty" json:"brokerUsername,omitempty"`
	BrokerPassword string `yaml:"brokerPassword,omitempty" json:"-"`

	// Provider settings
	ProviderURL     string `yaml:"providerUrl,omitempty" json:"providerUrl,omitempty"`
	StateSetupURL   string `yaml:"stateSetupUrl,omitempty" json:"stateSetupUrl,omitempty"`
	ProviderVersion string `yaml:"providerVersion,omitempty" json:"providerVersion,omitempty"`

	// Timeout bounds each broker call and each interaction, in seconds.
	Timeout int `yaml:"timeout" json:"timeout"`

	// Publish sends verification results back to the broker.
	Publish bool `yaml:"publish" json:"publish"`

	// Local files
	PactDir     string `yaml:"pactDir" json:"pactDir"`
	HistoryPath string `yaml:"historyPath" json:"historyPath"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were explicitly present in the source,
	// so that an explicit false can override a true from a lower layer.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)
