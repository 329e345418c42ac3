package config

import (
	"github.com/mrz1836/countdown/internal/constants"
)

// DefaultTimezone is the timezone name meaning the system's local zone.
const DefaultTimezone = "Local"

// DefaultConfig returns a new Config with default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Event: EventConfig{
			// APIBaseURL: empty until the user points countdown at an event API.
			APIBaseURL: "",
			Timeout:    constants.DefaultAPITimeout,
		},
		Countdown: CountdownConfig{
			Timezone: DefaultTimezone,
		},
		Notifications: NotificationsConfig{
			Bell: true,
		},
		Server: ServerConfig{
			Addr:           constants.DefaultServerAddr,
			AllowedOrigins: []string{"*"},
			WriteTimeout:   constants.DefaultWriteTimeout,
			PingInterval:   constants.DefaultPingInterval,
		},
	}
}
