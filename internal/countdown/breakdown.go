// Package countdown derives the time remaining until one fixed deadline and
// keeps that derivation current while something is watching it.
//
// Three pieces cooperate:
//   - Compute turns a (target, now) pair into a Remaining breakdown.
//   - Sampler owns the current instant and refreshes it once per second.
//   - Countdown ties a parsed target to a Sampler and republishes every
//     recomputed Remaining to its subscribers.
//
// Gate consumes the live expiry flag to refuse actions after the deadline.
//
// Import rules:
//   - CAN import: internal/constants, internal/errors
//   - MUST NOT import: internal/cli, internal/tui, internal/stream
package countdown

import (
	"fmt"
	"math"
	"time"

	"github.com/mrz1836/countdown/internal/constants"
)

// Remaining is the time left until a deadline, broken into whole units.
// When IsExpired is true every numeric field is zero.
type Remaining struct {
	Days      int64 `json:"days"`
	Hours     int64 `json:"hours"`
	Minutes   int64 `json:"minutes"`
	Seconds   int64 `json:"seconds"`
	IsExpired bool  `json:"is_expired"`
}

// Compute returns the breakdown of target minus now.
// A difference of zero or less is expired. Units are truncated toward zero,
// so sub-second remainders are dropped rather than rounded up.
func Compute(target, now time.Time) Remaining {
	diff := target.UnixMilli() - now.UnixMilli()
	if diff <= 0 {
		return Remaining{IsExpired: true}
	}

	return Remaining{
		Days:    diff / constants.MillisPerDay,
		Hours:   diff % constants.MillisPerDay / constants.MillisPerHour,
		Minutes: diff % constants.MillisPerHour / constants.MillisPerMinute,
		Seconds: diff % constants.MillisPerMinute / constants.MillisPerSecond,
	}
}

// Expired reports whether the deadline has passed.
// It lets a Remaining value stand in as an ExpirySource.
func (r Remaining) Expired() bool {
	return r.IsExpired
}

// TotalMillis reassembles the breakdown into whole milliseconds.
func (r Remaining) TotalMillis() int64 {
	return ((r.Days*24+r.Hours)*60+r.Minutes)*constants.MillisPerMinute + r.Seconds*constants.MillisPerSecond
}

// Total reassembles the breakdown into a duration, saturating at the
// largest representable duration for deadlines centuries away.
func (r Remaining) Total() time.Duration {
	ms := r.TotalMillis()
	if ms > int64(math.MaxInt64/time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond
}

// String renders the breakdown as "3d 04h 05m 06s", or "expired".
func (r Remaining) String() string {
	if r.IsExpired {
		return "expired"
	}
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}
