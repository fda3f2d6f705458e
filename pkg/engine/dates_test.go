package engine_test

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/pkg/engine"
)

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 3, 10, 15, 42, 7, 123, time.UTC)
	normalized := engine.DateOf(ts)

	if normalized.Hour() != 0 || normalized.Minute() != 0 || normalized.Second() != 0 {
		t.Errorf("DateOf should normalize to midnight, got %v", normalized)
	}
	if normalized.Year() != 2026 || normalized.Month() != 3 || normalized.Day() != 10 {
		t.Errorf("DateOf should keep the calendar date, got %v", normalized)
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day", time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC), 0},
		{"next day early morning", time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC), 1},
		{"previous day", time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC), -1},
		{"a week later", time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC), 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.DaysBetween(base, tc.to); got != tc.want {
				t.Errorf("DaysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWholeDays(t *testing.T) {
	if got := engine.WholeDays(26 * time.Hour); got != 1 {
		t.Errorf("WholeDays(26h) = %d, want 1", got)
	}
	if got := engine.WholeDays(23 * time.Hour); got != 0 {
		t.Errorf("WholeDays(23h) = %d, want 0", got)
	}
	if got := engine.WholeDays(-2 * time.Hour); got != -1 {
		t.Errorf("WholeDays(-2h) = %d, want -1", got)
	}
}
