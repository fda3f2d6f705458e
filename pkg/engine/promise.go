package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	defaultWorkEndHour   = 17
	defaultWorkEndMinute = 0
)

// parseWorkEnd parses an "HH:MM" work-end time. Each component falls
// back to the 17:00 default independently; malformed input never errors.
func parseWorkEnd(workEnd string) (hour, minute int) {
	hour = defaultWorkEndHour
	minute = defaultWorkEndMinute

	parts := strings.SplitN(workEnd, ":", 2)
	if len(parts) > 0 {
		if h, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil && h >= 0 && h <= 23 {
			hour = h
		}
	}
	if len(parts) > 1 {
		if m, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && m >= 0 && m <= 59 {
			minute = m
		}
	}
	return hour, minute
}

// EndOfDay returns today's date at the work-end time in now's location.
// workEnd is "HH:MM"; invalid or empty input falls back to 17:00.
func EndOfDay(workEnd string, now time.Time) time.Time {
	hour, minute := parseWorkEnd(workEnd)
	y, m, d := now.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, now.Location())
}

// EndOfWeek returns the upcoming Sunday (today if now is Sunday) at the
// work-end time, using the same fallback rule as EndOfDay.
func EndOfWeek(workEnd string, now time.Time) time.Time {
	daysUntilSunday := (7 - int(now.Weekday())) % 7
	return EndOfDay(workEnd, now).AddDate(0, 0, daysUntilSunday)
}

// IsPromiseOverdue reports whether the promise instant has passed.
// A promise exactly at now is not yet overdue.
func IsPromiseOverdue(promisedAt, now time.Time) bool {
	return promisedAt.Before(now)
}

// FormatPromise renders a promise deadline relative to now. Thresholds
// use whole-day duration math from the precise instant, not calendar
// midnights: a promise 30 hours out is "tomorrow" even across midnight.
func FormatPromise(promisedAt, now time.Time) string {
	diffDays := WholeDays(promisedAt.Sub(now))

	switch {
	case diffDays < 0:
		overdueBy := -diffDays
		if overdueBy == 1 {
			return "overdue by 1 day"
		}
		return fmt.Sprintf("overdue by %d days", overdueBy)
	case diffDays == 0:
		return "today"
	case diffDays == 1:
		return "tomorrow"
	case diffDays <= 7:
		return "by " + promisedAt.Format("Monday")
	default:
		return "by " + promisedAt.Format("January 2, 2006")
	}
}
