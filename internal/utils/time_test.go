package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "valid timezone Europe/Moscow", timezone: "Europe/Moscow"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc midday", time.Date(2025, 1, 5, 12, 30, 0, 0, time.UTC), "2025-01-05"},
		{"just before midnight", time.Date(2025, 1, 5, 23, 59, 59, 999, time.UTC), "2025-01-05"},
		// 01:00 in Moscow is still the previous day in UTC; the local calendar day wins
		{"east of utc early morning", time.Date(2025, 1, 6, 1, 0, 0, 0, moscow), "2025-01-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfDay(tt.in)
			if FormatDay(got) != tt.want {
				t.Errorf("StartOfDay(%v) = %v, want day %s", tt.in, got, tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
				t.Errorf("StartOfDay(%v) kept time of day: %v", tt.in, got)
			}
		})
	}
}

func TestSameDayAcrossZones(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	a := time.Date(2025, 3, 10, 0, 5, 0, 0, moscow)
	b := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Errorf("SameDay(%v, %v) = false, want true", a, b)
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Error("SameDay() = true for different days")
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2025-02-28")
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if NextDay(got) != time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("NextDay(%v) = %v", got, NextDay(got))
	}

	if _, err := ParseDay("28/02/2025"); err == nil {
		t.Error("ParseDay() expected error for wrong format")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.config/tracker/tracker.db")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if want := filepath.Join(home, ".config/tracker/tracker.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandPath() changed absolute path: %q", got)
	}
}

func TestDayIn(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	day := StartOfDay(time.Date(2024, 3, 6, 23, 0, 0, 0, time.UTC))

	got := DayIn(day, est)
	if got.Location() != est || FormatDay(got) != "2024-03-06" || got.Hour() != 0 {
		t.Errorf("DayIn() = %v, want midnight of 2024-03-06 in EST", got)
	}
	if !StartOfDay(got.In(est)).Equal(day) {
		t.Errorf("DayIn() does not round-trip through StartOfDay: %v", got)
	}
}
