package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvConfig          = "COMPACT_CONFIG"
	EnvBrokerURL       = "COMPACT_BROKER_URL"
	EnvBrokerToken     = "COMPACT_BROKER_TOKEN"
	EnvBrokerUsername  = "COMPACT_BROKER_USERNAME"
	EnvBrokerPassword  = "COMPACT_BROKER_PASSWORD"
	EnvProviderURL     = "COMPACT_PROVIDER_URL"
	EnvStateSetupURL   = "COMPACT_STATE_SETUP_URL"
	EnvProviderVersion = "COMPACT_PROVIDER_VERSION"
	EnvPactDir         = "COMPACT_PACT_DIR"
	EnvHistoryPath     = "COMPACT_HISTORY_PATH"
	EnvTimeout         = "COMPACT_TIMEOUT"
	EnvPublish         = "COMPACT_PUBLISH"
	EnvLogLevel        = "COMPACT_LOG_LEVEL"
	EnvLogFormat       = "COMPACT_LOG_FORMAT"
	EnvLogFile         = "COMPACT_LOG_FILE"
)

var envStrings = []struct {
	name string
	key  string
	dst  func(*CLIConfig) *string
}{
	{EnvBrokerURL, "brokerUrl", func(c *CLIConfig) *string { return &c.BrokerURL }},
	{EnvBrokerToken, "brokerToken", func(c *CLIConfig) *string { return &c.BrokerToken }},
	{EnvBrokerUsername, "brokerUsername", func(c *CLIConfig) *string { return &c.BrokerUsername }},
	{EnvBrokerPassword, "brokerPassword", func(c *CLIConfig) *string { return &c.BrokerPassword }},
	{EnvProviderURL, "providerUrl", func(c *CLIConfig) *string { return &c.ProviderURL }},
	{EnvStateSetupURL, "stateSetupUrl", func(c *CLIConfig) *string { return &c.StateSetupURL }},
	{EnvProviderVersion, "providerVersion", func(c *CLIConfig) *string { return &c.ProviderVersion }},
	{EnvPactDir, "pactDir", func(c *CLIConfig) *string { return &c.PactDir }},
	{EnvHistoryPath, "historyPath", func(c *CLIConfig) *string { return &c.HistoryPath }},
	{EnvLogLevel, "logLevel", func(c *CLIConfig) *string { return &c.LogLevel }},
	{EnvLogFormat, "logFormat", func(c *CLIConfig) *string { return &c.LogFormat }},
	{EnvLogFile, "logFile", func(c *CLIConfig) *string { return &c.LogFile }},
}

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	for _, e := range envStrings {
		if v := os.Getenv(e.name); v != "" {
			*e.dst(cfg) = v
			cfg.Sources[e.key] = SourceEnv
		}
	}

	// COMPACT_TIMEOUT
	if v := os.Getenv(EnvTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = timeout
			cfg.Sources["timeout"] = SourceEnv
		}
	}

	// COMPACT_PUBLISH
	if v := os.Getenv(EnvPublish); v != "" {
		cfg.Publish = v == "true" || v == "1" || v == "yes"
		cfg.Sources["publish"] = SourceEnv
	}
}
