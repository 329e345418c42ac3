package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/mrz1836/countdown/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - event.timeout must be positive
//   - event.api_base_url, when set, must be an absolute http(s) URL
//   - countdown.timezone must be loadable
//   - server.addr must not be empty
//   - server.write_timeout and server.ping_interval must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateEventConfig(&cfg.Event); err != nil {
		return err
	}

	if err := validateCountdownConfig(&cfg.Countdown); err != nil {
		return err
	}

	return validateServerConfig(&cfg.Server)
}

// validateEventConfig checks event API configuration values.
func validateEventConfig(cfg *EventConfig) error {
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidEvent,
			"event.timeout must be positive, got %s", cfg.Timeout)
	}

	if !cfg.HasAPI() {
		return nil
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(errors.ErrConfigInvalidEvent,
			"event.api_base_url must be an absolute http(s) URL, got %q", cfg.APIBaseURL)
	}

	return nil
}

// validateCountdownConfig checks countdown configuration values.
func validateCountdownConfig(cfg *CountdownConfig) error {
	if _, err := cfg.Location(); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidCountdown,
			"countdown.timezone %q cannot be loaded", cfg.Timezone)
	}
	return nil
}

// validateServerConfig checks stream server configuration values.
func validateServerConfig(cfg *ServerConfig) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return errors.Wrap(errors.ErrConfigInvalidServer,
			"server.addr must not be empty")
	}

	if cfg.WriteTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidServer,
			"server.write_timeout must be positive, got %s", cfg.WriteTimeout)
	}

	if cfg.PingInterval < time.Second {
		return errors.Wrapf(errors.ErrConfigInvalidServer,
			"server.ping_interval must be at least 1s, got %s", cfg.PingInterval)
	}

	return nil
}
