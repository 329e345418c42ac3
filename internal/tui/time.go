package tui

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultClock is the clock used for time phrasing.
// Tests replace it with a clockwork.FakeClock.
//
//nolint:gochecknoglobals // Package-level default for dependency injection
var DefaultClock clockwork.Clock = clockwork.NewRealClock()

// DeadlinePhrase describes a deadline relative to now.
// Examples: "ends in 3 days", "ends in 1 hour", "ends in under a minute",
// "ended just now", "ended 2 weeks ago".
func DeadlinePhrase(target time.Time) string {
	return DeadlinePhraseWith(target, DefaultClock)
}

// DeadlinePhraseWith is DeadlinePhrase with an explicit clock.
func DeadlinePhraseWith(target time.Time, c clockwork.Clock) string {
	diff := target.Sub(c.Now())
	if diff > 0 {
		if diff < time.Minute {
			return "ends in under a minute"
		}
		return "ends in " + humanSpan(diff)
	}

	if -diff < time.Minute {
		return "ended just now"
	}
	return "ended " + humanSpan(-diff) + " ago"
}

// humanSpan renders d (at least one minute) in its largest whole unit.
func humanSpan(d time.Duration) string {
	switch {
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatDeadline formats target in loc for display, e.g. "Wed, 31 Dec 2025 00:00 KST".
func FormatDeadline(target time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return target.In(loc).Format("Mon, 02 Jan 2006 15:04 MST")
}
