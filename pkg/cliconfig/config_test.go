package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CLIConfig
		wantErr string
	}{
		{
			name:    "valid defaults",
			config:  *NewDefault(),
			wantErr: "",
		},
		{
			name: "valid urls",
			config: CLIConfig{
				BrokerURL:     "https://broker.example.com",
				ProviderURL:   "http://localhost:8080",
				StateSetupURL: "http://localhost:8080/_pact/state",
				Timeout:       60,
			},
			wantErr: "",
		},
		{
			name:    "timeout too high",
			config:  CLIConfig{Timeout: 9999},
			wantErr: "timeout 9999 is out of range",
		},
		{
			name:    "timeout negative",
			config:  CLIConfig{Timeout: -1},
			wantErr: "timeout -1 is out of range",
		},
		{
			name:    "broker url without scheme",
			config:  CLIConfig{BrokerURL: "broker.example.com"},
			wantErr: "brokerUrl \"broker.example.com\" is invalid",
		},
		{
			name:    "provider url with ftp scheme",
			config:  CLIConfig{ProviderURL: "ftp://files.example.com"},
			wantErr: "scheme must be http or https",
		},
		{
			name:    "state setup url missing host",
			config:  CLIConfig{StateSetupURL: "http://"},
			wantErr: "host is missing",
		},
		{
			name:    "bad log level",
			config:  CLIConfig{LogLevel: "loud"},
			wantErr: "logLevel \"loud\" is invalid",
		},
		{
			name:    "bad log format",
			config:  CLIConfig{LogFormat: "xml"},
			wantErr: "logFormat \"xml\" is invalid",
		},
		{
			name:    "log level is case insensitive",
			config:  CLIConfig{LogLevel: "DEBUG", LogFormat: "JSON"},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
			}
		})
	}
}

func TestMergeConfig_BasicFields(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &CLIConfig{
			Timeout:   90,
			BrokerURL: "http://broker:9292",
			SetFields: map[string]bool{"timeout": true, "brokerUrl": true},
		}

		MergeConfig(target, source, SourceLocal)

		if target.Timeout != 90 {
			t.Errorf("expected timeout 90, got %d", target.Timeout)
		}
		if target.BrokerURL != "http://broker:9292" {
			t.Errorf("expected custom broker URL, got %q", target.BrokerURL)
		}
		if target.Sources["timeout"] != SourceLocal {
			t.Errorf("expected source 'local', got %q", target.Sources["timeout"])
		}
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		source := &CLIConfig{
			Timeout: 0,
		}

		MergeConfig(target, source, SourceLocal)

		if target.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout %d, got %d", DefaultTimeout, target.Timeout)
		}
		if target.PactDir != DefaultPactDir {
			t.Errorf("expected default pact dir, got %q", target.PactDir)
		}
	})

	t.Run("handles boolean false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.Publish = true

		source := &CLIConfig{
			Publish:   false,
			SetFields: map[string]bool{"publish": true},
		}

		MergeConfig(target, source, SourceLocal)

		if target.Publish {
			t.Error("expected publish to be false after merge")
		}
	})

	t.Run("does not merge boolean false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true

		MergeConfig(target, &CLIConfig{JSON: false}, SourceLocal)

		if !target.JSON {
			t.Error("expected json to remain true without SetFields")
		}
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()

		MergeConfig(target, nil, SourceLocal)

		if target.Timeout != DefaultTimeout {
			t.Errorf("expected timeout unchanged, got %d", target.Timeout)
		}
	})
}

func TestParseConfig(t *testing.T) {
	data := []byte(`brokerUrl: https://broker.example.com
providerUrl: http://localhost:8080
timeout: 10
publish: false
`)
	cfg, err := ParseConfig(".compactrc.yaml", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BrokerURL != "https://broker.example.com" {
		t.Errorf("brokerUrl = %q", cfg.BrokerURL)
	}
	if cfg.Timeout != 10 {
		t.Errorf("timeout = %d", cfg.Timeout)
	}
	if !cfg.SetFields["publish"] {
		t.Error("expected publish to be recorded as set")
	}
	if cfg.SetFields["json"] {
		t.Error("json was not in the file")
	}
}

func TestParseConfig_Error(t *testing.T) {
	_, err := ParseConfig("bad.yaml", []byte("timeout: [1, 2\nlogLevel: info\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if ce.Path != "bad.yaml" {
		t.Errorf("path = %q", ce.Path)
	}
	if !strings.HasPrefix(err.Error(), "bad.yaml") {
		t.Errorf("error should name the file, got %q", err.Error())
	}
}

func TestConfigError_Error(t *testing.T) {
	ce := &ConfigError{Path: "c.yaml", Line: 3, Message: "mapping values are not allowed"}
	if got := ce.Error(); got != "c.yaml (line 3): mapping values are not allowed" {
		t.Errorf("got %q", got)
	}
	ce.Line = 0
	if got := ce.Error(); got != "c.yaml: mapping values are not allowed" {
		t.Errorf("got %q", got)
	}
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvBrokerURL, "http://env-broker:9292")
	t.Setenv(EnvTimeout, "45")
	t.Setenv(EnvPublish, "yes")
	t.Setenv(EnvLogLevel, "debug")

	cfg := NewDefault()
	LoadEnvConfig(cfg)

	if cfg.BrokerURL != "http://env-broker:9292" {
		t.Errorf("brokerUrl = %q", cfg.BrokerURL)
	}
	if cfg.Timeout != 45 {
		t.Errorf("timeout = %d", cfg.Timeout)
	}
	if !cfg.Publish {
		t.Error("expected publish from env")
	}
	if cfg.Sources["logLevel"] != SourceEnv {
		t.Errorf("logLevel source = %q", cfg.Sources["logLevel"])
	}
}

func TestLoadEnvConfig_IgnoresBadTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")

	cfg := NewDefault()
	LoadEnvConfig(cfg)

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("timeout = %d", cfg.Timeout)
	}
}

func TestLoadAll_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	t.Setenv(EnvProviderURL, "http://env-provider:8080")

	path := filepath.Join(dir, "custom.yaml")
	content := "providerUrl: http://file-provider:8080\npactDir: contracts\npublish: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAll(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProviderURL != "http://env-provider:8080" {
		t.Errorf("env should win over file, got %q", cfg.ProviderURL)
	}
	if cfg.PactDir != "contracts" {
		t.Errorf("pactDir = %q", cfg.PactDir)
	}
	if !cfg.Publish || cfg.Sources["publish"] != SourceLocal {
		t.Errorf("publish = %v from %q", cfg.Publish, cfg.Sources["publish"])
	}
}

func TestLoadAll_MissingExplicitFile(t *testing.T) {
	_, err := LoadAll(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDefaultHistoryPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultHistoryPath(); got != filepath.Join("/data", "compact", "history.db") {
		t.Errorf("got %q", got)
	}
}
