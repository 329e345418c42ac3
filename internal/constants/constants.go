// Package constants provides centralized constant values used throughout countdown.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names used by countdown for configuration and logs.
const (
	// AppHome is the hidden directory name where countdown stores its data.
	// This directory is created in the user's home directory.
	AppHome = ".countdown"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Countdown timing.
const (
	// TickInterval is the fixed refresh cadence of the clock sampler.
	TickInterval = time.Second

	// MillisPerSecond is the number of milliseconds in one second.
	MillisPerSecond int64 = 1000

	// MillisPerMinute is the number of milliseconds in one minute.
	MillisPerMinute = 60 * MillisPerSecond

	// MillisPerHour is the number of milliseconds in one hour.
	MillisPerHour = 60 * MillisPerMinute

	// MillisPerDay is the number of milliseconds in one day.
	MillisPerDay = 24 * MillisPerHour
)

// EventEndedMessage is the fixed user-facing message shown when a gated
// action is attempted after the deadline.
const EventEndedMessage = "event has ended"

// Event API defaults.
const (
	// DefaultAPITimeout bounds every request to the event API.
	DefaultAPITimeout = 10 * time.Second

	// EventPath is the endpoint returning the current event.
	EventPath = "/event"

	// EntriesPath is the endpoint accepting entry submissions.
	EntriesPath = "/entries"

	// RequestIDHeader carries a per-request identifier on submissions.
	RequestIDHeader = "X-Request-ID"
)

// Stream server defaults.
const (
	// DefaultServerAddr is the listen address for the countdown stream server.
	DefaultServerAddr = ":8080"

	// DefaultWriteTimeout bounds a single websocket write.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultPingInterval is how often idle websocket clients are pinged.
	DefaultPingInterval = 30 * time.Second

	// ShutdownTimeout bounds graceful HTTP server shutdown.
	ShutdownTimeout = 5 * time.Second
)
