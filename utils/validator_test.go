package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if FormatDate(got) != "2025-03-01" {
		t.Errorf("round trip = %q, want 2025-03-01", FormatDate(got))
	}

	got, err = ParseDate(" 2025-03-01 ")
	if err != nil || FormatDate(got) != "2025-03-01" {
		t.Errorf("surrounding spaces should be tolerated: %v %v", got, err)
	}

	got, err = ParseDate("2025-03-01T15:04:05Z")
	if err != nil {
		t.Fatalf("RFC 3339 input failed: %v", err)
	}
	if FormatDate(got) != "2025-03-01" {
		t.Errorf("timestamp should truncate to the day, got %q", FormatDate(got))
	}

	for _, bad := range []string{"", "01/03/2025", "2025-13-01", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "2024-12-31" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Birth Certificate  ", "Birth Certificate"},
		{"with\x00null", "withnull"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		if got := SanitizeInput(tc.in); got != tc.want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
