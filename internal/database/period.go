package database

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// GetToday returns today's date as YYYY-MM-DD.
func GetToday() string {
	return time.Now().Format(dateLayout)
}

// MakePeriodID creates a period_id from start and end dates.
// If start == end, returns just the date (e.g., "2026-02-06").
// Otherwise returns a range (e.g., "2026-02-01..2026-02-06").
func MakePeriodID(start, end string) string {
	if start == end {
		return start
	}
	return start + ".." + end
}

// splitPeriod returns the start and end dates of a period id.
func splitPeriod(periodID string) (string, string) {
	if start, end, ok := strings.Cut(periodID, ".."); ok {
		return start, end
	}
	return periodID, periodID
}

// FormatPeriodDisplay formats a period_id for human-readable display.
// Single day: "Feb 06, 2026"
// Range: "Feb 01 - Feb 06, 2026"
func FormatPeriodDisplay(periodID string) string {
	startStr, endStr := splitPeriod(periodID)
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return periodID
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return periodID
	}
	if startStr == endStr {
		return end.Format("Jan 02, 2006")
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
}

// PeriodEndDate extracts the end date from a period_id.
func PeriodEndDate(periodID string) string {
	_, end := splitPeriod(periodID)
	return end
}

// PeriodBounds returns the first and the last instant of a period in the
// local time zone.
func PeriodBounds(periodID string) (time.Time, time.Time, error) {
	startStr, endStr := splitPeriod(periodID)
	start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q: %w", periodID, err)
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q: %w", periodID, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q: end before start", periodID)
	}
	return start, end.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}
