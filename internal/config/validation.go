package config

import (
	"fmt"
	"net/url"
	"strings"
)

func validate(c *Config) error {
	if err := c.Terminal.validate(); err != nil {
		return err
	}
	if err := c.Trade.validate(); err != nil {
		return err
	}
	return c.Journal.validate()
}

func (t *TerminalConfig) validate() error {
	raw := strings.TrimSpace(t.BridgeURL)
	if raw == "" {
		return fmt.Errorf("terminal.bridge_url cannot be empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("terminal.bridge_url is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("terminal.bridge_url must be http or https (got %q)", parsed.Scheme)
	}
	return nil
}

func (t *TradeConfig) validate() error {
	if t.DefaultDeviation < 0 {
		return fmt.Errorf("trade.default_deviation must be >= 0")
	}
	return nil
}

func (j *JournalConfig) validate() error {
	if j.Enabled && strings.TrimSpace(j.Path) == "" {
		return fmt.Errorf("journal.path cannot be empty when journal.enabled")
	}
	return nil
}
