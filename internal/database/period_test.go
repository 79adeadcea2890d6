package database

import (
	"strings"
	"testing"
	"time"
)

func TestGetToday(t *testing.T) {
	today := GetToday()
	if _, err := time.Parse("2006-01-02", today); err != nil {
		t.Errorf("expected YYYY-MM-DD, got %q", today)
	}
}

func TestFormatPeriodDisplaySingleDay(t *testing.T) {
	if got := FormatPeriodDisplay("2026-02-06"); got != "Feb 06, 2026" {
		t.Errorf("expected 'Feb 06, 2026', got %q", got)
	}
}

func TestFormatPeriodDisplayRange(t *testing.T) {
	result := FormatPeriodDisplay("2026-02-01..2026-02-06")
	if result != "Feb 01 - Feb 06, 2026" {
		t.Errorf("expected 'Feb 01 - Feb 06, 2026', got %q", result)
	}
}

func TestFormatPeriodDisplayInvalid(t *testing.T) {
	if got := FormatPeriodDisplay("latest"); got != "latest" {
		t.Errorf("expected input back, got %q", got)
	}
}

func TestMakePeriodIDSingleDay(t *testing.T) {
	result := MakePeriodID("2026-02-06", "2026-02-06")
	if result != "2026-02-06" {
		t.Errorf("expected '2026-02-06', got %q", result)
	}
}

func TestMakePeriodIDRange(t *testing.T) {
	result := MakePeriodID("2026-02-01", "2026-02-06")
	if result != "2026-02-01..2026-02-06" {
		t.Errorf("expected '2026-02-01..2026-02-06', got %q", result)
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end, err := PeriodBounds("2026-02-01..2026-02-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := start.Format("2006-01-02 15:04:05"); got != "2026-02-01 00:00:00" {
		t.Errorf("unexpected start %s", got)
	}
	if got := end.Format("2006-01-02 15:04:05"); got != "2026-02-06 23:59:59" {
		t.Errorf("unexpected end %s", got)
	}

	start, end, err = PeriodBounds("2026-02-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Sub(start) != 24*time.Hour-time.Nanosecond {
		t.Errorf("expected a single day, got %v", end.Sub(start))
	}
}

func TestPeriodBoundsInvalid(t *testing.T) {
	for _, id := range []string{"", "yesterday", "2026-02-06..2026-02-01"} {
		if _, _, err := PeriodBounds(id); err == nil || !strings.Contains(err.Error(), "invalid period") {
			t.Errorf("%q: expected invalid period error, got %v", id, err)
		}
	}
}
