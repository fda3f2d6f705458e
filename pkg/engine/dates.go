package engine

import (
	"math"
	"time"
)

// DateOf normalizes t to midnight in its own location. All calendar-date
// math in the engine goes through this so due dates, snooze dates and
// "today" are always compared on the same footing.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from "from" to "to",
// both normalized to local midnight. Positive when "to" is later.
// Rounding absorbs DST transitions that make a day 23 or 25 hours long.
func DaysBetween(from, to time.Time) int {
	diff := DateOf(to).Sub(DateOf(from))
	return int(math.Round(diff.Hours() / 24))
}

// WholeDays returns the floor of d expressed in whole 24-hour days.
// Unlike DaysBetween this is duration math, not calendar math: promise
// display thresholds are measured from the precise instant.
func WholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
