package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses an ISO 8601 date: YYYY-MM-DD or full RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC3339", s)
}

// ParseMonth parses YYYY-MM to the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	return time.Parse("2006-01", strings.TrimSpace(s))
}

// FormatDate formats a date as YYYY-MM-DD for API responses.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMonth formats a date as YYYY-MM.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}

// FormatTimestamp formats a timestamp as RFC3339.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
