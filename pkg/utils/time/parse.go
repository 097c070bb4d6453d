// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Accepts the date shapes content clients send; date-only values mean local midnight

package time

import (
	"strings"
	"time"
)

// DateLayout is the date-only wire and form format
const DateLayout = "2006-01-02"

// Formats carrying an explicit zone or offset
var zonedFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// Formats interpreted in the caller's location
var localFormats = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	DateLayout,
	"2006/01/02",
}

// ParseFlexibleTime parses s in the local time zone; see ParseFlexibleTimeIn
func ParseFlexibleTime(timeStr string) time.Time {
	return ParseFlexibleTimeIn(timeStr, time.Local)
}

// ParseFlexibleTimeIn parses s with a set of common layouts. Values without
// a zone are read in loc, so a bare date is midnight of that day in loc.
// Unparseable input yields the zero time.
func ParseFlexibleTimeIn(timeStr string, loc *time.Location) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}

	for _, format := range zonedFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}
	for _, format := range localFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t
		}
	}

	return time.Time{}
}

// ParseWithDefault attempts to parse a time string, returning a default if parsing fails
func ParseWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if parsed := ParseFlexibleTime(timeStr); !parsed.IsZero() {
		return parsed
	}
	return defaultTime
}

// LocalMidnight returns 00:00 of t's calendar day in loc
func LocalMidnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// FormatDate renders t as YYYY-MM-DD in loc; the zero time renders empty
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
