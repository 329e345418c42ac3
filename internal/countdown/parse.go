package countdown

import (
	"strings"
	"time"

	"github.com/mrz1836/countdown/internal/errors"
)

// dateOnlyLayout is the YYYY-MM-DD form. Values in this form are midnight UTC.
const dateOnlyLayout = time.DateOnly

// zonedLayouts carry their own offset.
//
//nolint:gochecknoglobals // Read-only layout table
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// wallClockLayouts carry no offset and are read in the caller's location.
//
//nolint:gochecknoglobals // Read-only layout table
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
}

// ParseEndDate parses a countdown end date into an instant.
//
// A bare date (2025-12-31) is midnight UTC. RFC 3339 timestamps keep their
// offset. Date-times without an offset are wall-clock times in loc, which
// defaults to time.Local when nil.
//
// Anything else is an error wrapping errors.ErrInvalidEndDate. An invalid
// end date is never treated as an already-expired countdown.
func ParseEndDate(endDate string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(endDate)
	if value == "" {
		return time.Time{}, errors.Wrap(errors.ErrInvalidEndDate, "end date is empty")
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Wrapf(errors.ErrInvalidEndDate, "cannot parse %q", endDate)
}
