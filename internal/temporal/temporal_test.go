package temporal

import (
	"errors"
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	tokens := []string{
		"2026-01-22",
		"2026-01-22 14:00",
		"2026-01-22 00:00",
		"2024-02-29",
		"1999-12-31 23:59",
		"2000-01-01",
	}
	for _, tok := range tokens {
		v, err := Parse(tok)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tok, err)
		}
		if got := v.StorageToken(); got != tok {
			t.Errorf("StorageToken: got %q, want %q", got, tok)
		}
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not a leap year", "2023-02-29"},
		{"feb 30", "2024-02-30"},
		{"month 13", "2026-13-01"},
		{"month zero", "2026-00-10"},
		{"day zero", "2026-01-00"},
		{"hour 24", "2026-01-22 24:00"},
		{"minute 60", "2026-01-22 12:60"},
		{"single digit month", "2026-1-22"},
		{"wrong separator", "2026/01/22"},
		{"trailing seconds", "2026-01-22 14:00:00"},
		{"letters", "abcd-ef-gh"},
		{"empty", ""},
		{"t separator", "2026-01-22T14:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.token)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Token != tt.token {
				t.Errorf("Token: got %q, want %q", fe.Token, tt.token)
			}
		})
	}
}

func TestLeapYear(t *testing.T) {
	if _, err := Parse("2024-02-29"); err != nil {
		t.Errorf("2024-02-29 should be valid: %v", err)
	}
	if _, err := Parse("2023-02-29"); err == nil {
		t.Error("2023-02-29 should be rejected")
	}
}

func TestGranularity(t *testing.T) {
	d := MustParse("2026-01-22")
	if d.Granularity() != DateOnly {
		t.Errorf("expected DateOnly, got %s", d.Granularity())
	}
	if h, m, _ := d.Time().Clock(); h != 0 || m != 0 {
		t.Errorf("date-only value should be midnight, got %02d:%02d", h, m)
	}

	dt := MustParse("2026-01-22 14:30")
	if dt.Granularity() != DateTime {
		t.Errorf("expected DateTime, got %s", dt.Granularity())
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"2026-01-22", "Jan 22 2026"},
		{"2026-01-22 14:00", "Jan 22 2026 14:00"},
		{"2026-01-02 23:59", "Jan 02 2026 23:59"},
		{"2025-12-05", "Dec 05 2025"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.token).Display(); got != tt.want {
			t.Errorf("Display(%q): got %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestSameDateIgnoresTime(t *testing.T) {
	a := MustParse("2026-01-22 09:15")
	b := MustParse("2026-01-22")
	c := MustParse("2026-01-23 00:00")

	if !a.SameDate(b) {
		t.Error("expected same date")
	}
	if a.SameDate(c) {
		t.Error("expected different dates")
	}
	y, m, d := a.Date()
	if y != 2026 || m != time.January || d != 22 {
		t.Errorf("Date: got %d-%d-%d", y, m, d)
	}
}

func TestBefore(t *testing.T) {
	start := MustParse("2026-01-22 10:00")
	end := MustParse("2026-01-22 09:00")
	if !end.Before(start) {
		t.Error("expected end before start")
	}
	if start.Before(start) {
		t.Error("value should not be before itself")
	}
}
