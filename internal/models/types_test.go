package models

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"evening in Denver is the previous UTC day", time.Date(2026, 10, 20, 2, 30, 0, 0, time.UTC), "2026-10-19"},
		{"morning in Denver", time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC), "2026-10-20"},
		{"winter offset", time.Date(2026, 1, 15, 6, 59, 0, 0, time.UTC), "2026-01-14"},
		{"winter offset after midnight", time.Date(2026, 1, 15, 7, 0, 0, 0, time.UTC), "2026-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayOf(tt.at, denver)
			if got.Format(DayFormat) != tt.want {
				t.Errorf("DayOf(%s) = %s, want %s", tt.at, got.Format(DayFormat), tt.want)
			}
			if got.Location() != time.UTC || got.Hour() != 0 {
				t.Errorf("Expected midnight UTC, got %s", got)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-10-19T00:00:00Z")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if day.Format(DayFormat) != "2026-10-19" {
		t.Errorf("Expected 2026-10-19, got %s", day.Format(DayFormat))
	}

	if _, err := ParseDay("10/19/2026"); err == nil {
		t.Error("Expected error for non ISO date")
	}
}

func TestNewUUID(t *testing.T) {
	a, b := NewUUID(), NewUUID()
	if a == b {
		t.Error("Expected distinct ids")
	}
	if len(a) != 36 {
		t.Errorf("Expected canonical UUID string, got %q", a)
	}
}
