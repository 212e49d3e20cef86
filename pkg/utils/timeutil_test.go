package utils

import (
	"testing"
	"time"
)

func TestParseLookbackDays(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 90, false},
		{"   ", 90, false},
		{"30", 30, false},
		{" 7 ", 7, false},
		{"0", 0, false},
		{"-5", 0, true},
		{"abc", 0, true},
		{"12x", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLookbackDays(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLookbackDays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLookbackDays(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	got := Cutoff(now, 90)
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Cutoff = %v, want %v", got, want)
	}
}

func TestParseDateIn(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	got, err := ParseDateIn("2023-12-31", loc)
	if err != nil {
		t.Fatalf("ParseDateIn error: %v", err)
	}
	if got.Year() != 2023 || got.Month() != time.December || got.Day() != 31 || got.Hour() != 0 {
		t.Errorf("ParseDateIn = %v", got)
	}
	if got.Location() != loc {
		t.Errorf("location = %v, want %v", got.Location(), loc)
	}

	if _, err := ParseDateIn("12/31/2023", loc); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestFormatStamp(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 30, 5, 0, time.UTC)
	if got := FormatStamp(ts); got != "20240115_093005" {
		t.Errorf("FormatStamp = %q", got)
	}
}
