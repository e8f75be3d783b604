package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if c.Session.TTLMinutes <= 0 {
		return errors.New("session.ttl_minutes must be positive")
	}
	if c.Merge.MinIntervalMS < 0 {
		return errors.New("merge.min_interval_ms must not be negative")
	}
	if c.Merge.Burst < 1 {
		return errors.New("merge.burst must be at least 1")
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	switch c.UI.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("ui.language: unsupported value %q (use en or ja)", c.UI.Language)
	}
	return nil
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind: %w", err)
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("server.max_upload_mb must be positive")
	}
	if c.Server.PublicURL != "" {
		u, err := url.Parse(c.Server.PublicURL)
		if err != nil {
			return fmt.Errorf("server.public_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("server.public_url: scheme must be http or https, got %q", u.Scheme)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json", "auto":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
