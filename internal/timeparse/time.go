package timeparse

import (
	"fmt"
	"time"
)

// ParseTime parses various date/time formats in UTC.
// Supported formats:
//   - YYYY-MM-DD (assumes 00:00:00 UTC)
//   - YYYY-MM-DD HH:MM:SS (UTC)
//   - RFC3339: 2018-10-27T10:00:00Z (can specify any timezone)
//
// Returns the parsed time or an error if the format is invalid.
func ParseTime(s string) (time.Time, error) {
	// Try parsing as date only (YYYY-MM-DD) - assume UTC
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	// Try parsing as date and time (YYYY-MM-DD HH:MM:SS) - assume UTC
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t, nil
	}

	// Try parsing as RFC3339 (can specify timezone explicitly)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time format %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or RFC3339)", s)
}

// ParseSince resolves a --since value relative to now. A duration ("2d",
// "36h") means that long before now; anything else must be an absolute time
// accepted by ParseTime.
func ParseSince(s string, now time.Time) (time.Time, error) {
	if d, err := ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected a duration like 2d or a date like 2024-01-31)", s)
	}
	if t.After(now) {
		return time.Time{}, fmt.Errorf("time %q is in the future", s)
	}
	return t, nil
}
