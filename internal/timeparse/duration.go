// Package timeparse parses the relative and absolute times accepted by
// gh-search flags such as --since and --cache-ttl.
package timeparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var units = map[string]time.Duration{
	"s":     time.Second,
	"m":     time.Minute,
	"h":     time.Hour,
	"d":     day,
	"day":   day,
	"days":  day,
	"w":     week,
	"week":  week,
	"weeks": week,
}

// ParseDuration parses a single-unit duration such as "10h", "2d", or
// "3weeks". It backs the day and week forms of --cache-ttl and the relative
// form of gist --since ("2w" means two weeks ago).
//
// Supported units: s, m, h, d/day/days, w/week/weeks.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	split := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	switch split {
	case 0:
		return 0, fmt.Errorf("invalid duration %q: missing number", s)
	case -1:
		return 0, fmt.Errorf("invalid duration %q: missing unit", s)
	}

	num, err := strconv.ParseInt(s[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	name := strings.TrimSpace(s[split:])
	unit, ok := units[name]
	if !ok {
		return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, name)
	}
	if num > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid duration %q: value too large", s)
	}

	return time.Duration(num) * unit, nil
}
