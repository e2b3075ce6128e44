package cliconfig

import (
	"os"
	"path/filepath"
)

// DefaultTimeout is the default per-call timeout in seconds.
const DefaultTimeout = 30

// DefaultPactDir is where contracts are read from and written to.
const DefaultPactDir = "pacts"

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// historyFileName is the bbolt database holding verification history.
const historyFileName = "history.db"

// DefaultHistoryPath returns the default path for the history database.
// Location: $XDG_DATA_HOME/compact/history.db (or ~/.local/share/compact/history.db)
func DefaultHistoryPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, GlobalConfigDir, historyFileName)
}

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Timeout:     DefaultTimeout,
		PactDir:     DefaultPactDir,
		HistoryPath: DefaultHistoryPath(),
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		Sources:     make(map[string]string),
	}

	// Mark all as default source
	for _, key := range []string{"timeout", "pactDir", "historyPath", "logLevel", "logFormat", "publish", "json"} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
