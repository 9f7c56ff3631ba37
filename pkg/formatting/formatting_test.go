package formatting_test

import (
	"testing"
	"time"

	"github.com/stahlwerk/meltplan/pkg/formatting"
)

func TestParseMonthLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"short year", "Jun 24", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), false},
		{"full year", "Jun 2024", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), false},
		{"full month name", "September 2024", time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), false},
		{"iso month", "2024-06", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), false},
		{"surrounding whitespace", "  Jun 24  ", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), false},
		{"empty string", "", time.Time{}, true},
		{"not a month", "Quality:", time.Time{}, true},
		{"bare number", "42", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseMonthLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMonthLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseMonthLabel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2024, time.September, 17, 13, 45, 0, 0, time.FixedZone("CET", 3600))
	want := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

	if got := formatting.MonthStart(in); !got.Equal(want) {
		t.Errorf("MonthStart() = %v, want %v", got, want)
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  string
	}{
		{"september", 2024, time.September, "September 2024"},
		{"january", 2025, time.January, "January 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.MonthLabel(tt.year, tt.month); got != tt.want {
				t.Errorf("MonthLabel(%d, %d) = %q, want %q", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare bytes", "1024", 1024, false},
		{"bytes unit", "512B", 512, false},
		{"kilobytes", "1KB", 1024, false},
		{"megabytes", "50MB", 50 * 1024 * 1024, false},
		{"gigabytes", "2GB", 2 * 1024 * 1024 * 1024, false},
		{"lowercase unit", "10mb", 10 * 1024 * 1024, false},
		{"with space", "100 MB", 100 * 1024 * 1024, false},
		{"leading whitespace", "  50MB", 50 * 1024 * 1024, false},
		{"zero", "0", 0, false},
		{"empty string", "", 0, true},
		{"unknown unit", "50XX", 0, true},
		{"no number", "MB", 0, true},
		{"negative", "-5MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 2, "0 B"},
		{"bytes", 500, 0, "500 B"},
		{"one KB", 1024, 0, "1 KB"},
		{"one MB", 1024 * 1024, 0, "1 MB"},
		{"50 MB", 50 * 1024 * 1024, 0, "50 MB"},
		{"fractional MB", 1536 * 1024, 1, "1.5 MB"},
		{"negative precision clamped to zero", 1024, -1, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatting.FormatBytes(tt.n, tt.precision)
			if got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}
