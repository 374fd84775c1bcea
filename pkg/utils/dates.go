package utils

import (
	"fmt"
	"strings"
	"time"
)

// Constants
const (
	DATE_TIME_LAYOUT = "2006-01-02 15:04"
	DATE_LAYOUT      = "2006-01-02"
)

// dateFormats are tried in this fixed priority order; the first match wins.
// Ambiguous inputs like 01/02/2025 parse as MM/DD before DD/MM is tried.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDateTime parses a free-form date-time string against the supported
// formats. It returns an error when no format matches.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// FormatDateTime formats a time to the standard string form, with or
// without the time component.
func FormatDateTime(t time.Time, includeTime bool) string {
	if t.IsZero() {
		return ""
	}
	if includeTime {
		return t.Format(DATE_TIME_LAYOUT)
	}
	return t.Format(DATE_LAYOUT)
}

// IsPast reports whether the date string is before now. Unparseable input
// reports false.
func IsPast(value string) bool {
	t, err := ParseDateTime(value)
	if err != nil {
		return false
	}
	return t.Before(time.Now())
}

// IsFuture reports whether the date string is after now. Unparseable input
// reports false.
func IsFuture(value string) bool {
	t, err := ParseDateTime(value)
	if err != nil {
		return false
	}
	return t.After(time.Now())
}

// HoursUntil returns the number of hours from now until the given date
// string, negative when it is in the past.
func HoursUntil(value string, now time.Time) (float64, error) {
	t, err := ParseDateTime(value)
	if err != nil {
		return 0, err
	}
	return t.Sub(now).Hours(), nil
}
