package timeutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimeOfDay parses a 24-hour "HH:MM" string into its hour and minute
// components. The hour must be zero-padded; values outside 00:00-23:59 are
// rejected.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid time format, expected HH:MM: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// MinuteKey returns the minute-resolution wall-clock representation of t,
// comparable against a job's time of day.
func MinuteKey(t time.Time) string {
	return t.Format("15:04")
}

// DateKey returns the calendar-date representation of t, used to track
// per-day fired state.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// NextOccurrence returns the next time a daily "HH:MM" schedule fires,
// starting from 'from'. If the time of day has not yet passed on from's
// date it fires today, otherwise tomorrow.
func NextOccurrence(timeOfDay string, from time.Time) (time.Time, error) {
	hour, minute, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	candidate := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location())
	if !candidate.After(from) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}
