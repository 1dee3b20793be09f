package cuts

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartOnFriday(t *testing.T) {
	friday := day(2024, time.March, 1)
	if got := WeekStart(friday); !got.Equal(friday) {
		t.Fatalf("expected friday itself, got %s", got)
	}
}

func TestWeekStartMidWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{day(2024, time.March, 2), day(2024, time.March, 1)},  // saturday
		{day(2024, time.March, 4), day(2024, time.March, 1)},  // monday
		{day(2024, time.March, 7), day(2024, time.March, 1)},  // thursday
		{day(2024, time.March, 8), day(2024, time.March, 8)},  // next friday
		{day(2024, time.January, 4), day(2023, time.December, 29)}, // year boundary
	}
	for _, tc := range cases {
		if got := WeekStart(tc.in); !got.Equal(tc.want) {
			t.Fatalf("WeekStart(%s): expected %s got %s", tc.in, tc.want, got)
		}
	}
}

func TestWeekStartStripsClock(t *testing.T) {
	late := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	if got := WeekStart(late); !got.Equal(day(2024, time.March, 1)) {
		t.Fatalf("expected clock stripped, got %s", got)
	}
}

func TestWeekEnd(t *testing.T) {
	if got := WeekEnd(day(2024, time.March, 1)); !got.Equal(day(2024, time.March, 7)) {
		t.Fatalf("expected thursday 2024-03-07, got %s", got)
	}
}

func TestPrevAndNextWeek(t *testing.T) {
	start := day(2024, time.March, 8)
	if got := PrevWeek(start); !got.Equal(day(2024, time.March, 1)) {
		t.Fatalf("expected 2024-03-01, got %s", got)
	}
	if got := NextWeek(start); !got.Equal(day(2024, time.March, 15)) {
		t.Fatalf("expected 2024-03-15, got %s", got)
	}
}
