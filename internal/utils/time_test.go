package utils

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{name: "same instant", to: base, want: 0},
		{name: "exact days ahead", to: base.AddDate(0, 0, 20), want: 20},
		{name: "exact days behind", to: base.AddDate(0, 0, -10), want: -10},
		{name: "partial day ahead across midnight", to: base.Add(12 * time.Hour), want: 0},
		{name: "partial day behind across midnight", to: base.Add(-15 * time.Hour), want: 0},
		{name: "thirty days and 23 hours", to: base.AddDate(0, 0, 30).Add(23 * time.Hour), want: 30},
		{name: "one minute short of 31 days", to: base.AddDate(0, 0, 31).Add(-time.Minute), want: 30},
		{name: "just past 31 days behind", to: base.AddDate(0, 0, -31).Add(-time.Minute), want: -31},
		{name: "across month end", to: time.Date(2026, 4, 1, 14, 30, 0, 0, time.UTC), want: 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(base, tt.to); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// DST starts 2026-03-08 in New York; the day is only 23 hours long.
	from := time.Date(2026, 3, 7, 9, 0, 0, 0, loc)
	to := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)
	if got := DaysBetween(from, to); got != 2 {
		t.Errorf("DaysBetween() across DST = %d, want 2", got)
	}
}

func TestDaysBetweenDifferentLocations(t *testing.T) {
	from := time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 3, 0, 0, 0, 0, time.FixedZone("UTC+1", 3600)) // 2026-01-02 23:00 UTC
	if got := DaysBetween(from, to); got != 1 {
		t.Errorf("DaysBetween() = %d, want 1", got)
	}
}

func TestAtTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	due := time.Date(2026, 6, 2, 3, 0, 0, 0, time.UTC) // 2026-06-01 22:00 in loc
	got := AtTimeOfDay(due, 9, 0, loc)
	want := time.Date(2026, 6, 1, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("AtTimeOfDay() = %v, want %v", got, want)
	}
}

func TestLoadLocation(t *testing.T) {
	for _, tz := range []string{"", "Local"} {
		loc, err := LoadLocation(tz)
		if err != nil || loc != time.Local {
			t.Errorf("LoadLocation(%q) = %v, %v; want time.Local", tz, loc, err)
		}
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("ValidateTimezone should reject an unknown zone")
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc := time.FixedZone("X", 7200)
	got, err := ParseDateInLocation("2026-02-14", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 || got.Day() != 14 || got.Location() != loc {
		t.Errorf("unexpected parsed date: %v", got)
	}
	if _, err := ParseDateInLocation("14/02/2026", loc); err == nil {
		t.Error("expected error for malformed date")
	}
}
