// Package config provides configuration management for countdown with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (COUNTDOWN_* prefix)
//  3. Project config (.countdown/config.yaml)
//  4. Global config (~/.countdown/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import (
	"strings"
	"time"
	_ "time/tzdata" // IANA zones for countdown.timezone on hosts without zoneinfo
)

// Config is the root configuration structure for countdown.
type Config struct {
	// Event contains settings for the event API the countdown is read from.
	Event EventConfig `yaml:"event" mapstructure:"event" json:"event"`

	// Countdown contains settings for how end dates are interpreted.
	Countdown CountdownConfig `yaml:"countdown" mapstructure:"countdown" json:"countdown"`

	// Notifications contains settings for user notifications.
	Notifications NotificationsConfig `yaml:"notifications" mapstructure:"notifications" json:"notifications"`

	// Server contains settings for the countdown stream server.
	Server ServerConfig `yaml:"server" mapstructure:"server" json:"server"`
}

// EventConfig contains settings for the event API.
type EventConfig struct {
	// APIBaseURL is the root URL of the event API (GET /event, POST /entries).
	// Empty disables event lookups; an end date must then be given directly.
	APIBaseURL string `yaml:"api_base_url" mapstructure:"api_base_url" json:"api_base_url"`

	// Timeout bounds each request to the event API.
	// Default: 10 seconds
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout"`

	// EndDate is a fallback deadline used when no end date is passed on
	// the command line and no event API is configured.
	EndDate string `yaml:"end_date" mapstructure:"end_date" json:"end_date,omitempty"`
}

// HasAPI reports whether an event API is configured.
func (c EventConfig) HasAPI() bool {
	return strings.TrimSpace(c.APIBaseURL) != ""
}

// CountdownConfig contains settings for end date interpretation.
type CountdownConfig struct {
	// Timezone is the IANA zone used for end dates without an offset.
	// "Local" (the default) means the system zone.
	Timezone string `yaml:"timezone" mapstructure:"timezone" json:"timezone"`
}

// Location resolves Timezone. An empty name or "Local" is the system zone.
func (c CountdownConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, DefaultTimezone) {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// NotificationsConfig contains settings for user notifications.
type NotificationsConfig struct {
	// Bell rings the terminal bell when a watched countdown reaches its deadline.
	// Default: true
	Bell bool `yaml:"bell" mapstructure:"bell" json:"bell"`
}

// ServerConfig contains settings for the countdown stream server.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8080"
	Addr string `yaml:"addr" mapstructure:"addr" json:"addr"`

	// AllowedOrigins lists origins permitted by CORS and the websocket upgrader.
	// "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins" json:"allowed_origins"`

	// WriteTimeout bounds a single websocket write.
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" json:"write_timeout"`

	// PingInterval is how often connected clients are pinged.
	PingInterval time.Duration `yaml:"ping_interval" mapstructure:"ping_interval" json:"ping_interval"`
}
