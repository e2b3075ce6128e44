package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "compact"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".compactrc.yaml", ".compactrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .compactrc.yaml or .compactrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfigFile loads a CLIConfig from a YAML file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes YAML config data. path is only used in errors.
func ParseConfig(path string, data []byte) (*CLIConfig, error) {
	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newConfigError(path, err)
	}

	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, newConfigError(path, err)
	}

	cfg.Sources = make(map[string]string)
	cfg.SetFields = make(map[string]bool, len(keys))
	for k := range keys {
		cfg.SetFields[k] = true
	}
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

// newConfigError extracts the line number yaml.v3 puts in its messages
// ("yaml: line 3: ...").
func newConfigError(path string, err error) *ConfigError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}

	ce := &ConfigError{Path: path, Message: msg}
	if rest, ok := strings.CutPrefix(msg, "line "); ok {
		if num, tail, ok := strings.Cut(rest, ": "); ok {
			if line, err := strconv.Atoi(num); err == nil {
				ce.Line = line
				ce.Message = tail
			}
		}
	}
	return ce
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > local config (or explicitPath) > global config > defaults.
// Flags are merged by the caller.
func LoadAll(explicitPath string) (*CLIConfig, error) {
	// Start with defaults
	cfg := NewDefault()

	// Load global config
	if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, globalCfg, SourceGlobal)
	}

	// Load local config
	localPath := explicitPath
	if localPath == "" {
		localPath = os.Getenv(EnvConfig)
	}
	if localPath == "" {
		if found, err := FindLocalConfig(); err == nil {
			localPath = found
		}
	}
	if localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	// Load environment variables
	LoadEnvConfig(cfg)

	return cfg, nil
}
