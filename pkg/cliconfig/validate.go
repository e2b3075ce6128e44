package cliconfig

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/logging"
)

// MaxTimeout is the largest accepted timeout in seconds.
const MaxTimeout = 3600

// Validate checks value ranges and URL syntax.
func (c *CLIConfig) Validate() error {
	if c.Timeout < 0 || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout %d is out of range (0-%d)", c.Timeout, MaxTimeout)
	}

	urls := []struct {
		key   string
		value string
	}{
		{"brokerUrl", c.BrokerURL},
		{"providerUrl", c.ProviderURL},
		{"stateSetupUrl", c.StateSetupURL},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		if err := validateURL(u.value); err != nil {
			return fmt.Errorf("%s %q is invalid: %w", u.key, u.value, err)
		}
	}

	if c.LogLevel != "" && !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("logLevel %q is invalid (debug, info, warn, error)", c.LogLevel)
	}
	if c.LogFormat != "" {
		switch strings.ToLower(c.LogFormat) {
		case "text", "json":
		default:
			return fmt.Errorf("logFormat %q is invalid (text, json)", c.LogFormat)
		}
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host is missing")
	}
	return nil
}
