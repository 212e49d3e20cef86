package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultLookbackDays is used when the operator leaves the look-back blank.
const DefaultLookbackDays = 90

// StampLayout is the second-precision timestamp used in generated filenames.
const StampLayout = "20060102_150405"

// ParseLookbackDays parses an operator-supplied day count.
// Blank input yields DefaultLookbackDays; zero is a valid window and negative
// counts are rejected.
func ParseLookbackDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLookbackDays, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid day count %d: must not be negative", n)
	}
	return n, nil
}

// Cutoff returns the inclusive recency cutoff now - days.
func Cutoff(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// ParseDateIn parses a "2006-01-02" calendar date at midnight in loc.
func ParseDateIn(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), loc)
}

// FormatStamp formats t for use in filenames, e.g. "20240115_093000".
func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}
