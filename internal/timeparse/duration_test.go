package timeparse

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		// Single-letter units
		{name: "seconds", input: "90s", want: 90 * time.Second},
		{name: "minutes", input: "30m", want: 30 * time.Minute},
		{name: "hours", input: "36h", want: 36 * time.Hour},
		{name: "days", input: "2d", want: 48 * time.Hour},
		{name: "weeks", input: "2w", want: 14 * 24 * time.Hour},

		// Word units
		{name: "day", input: "1day", want: 24 * time.Hour},
		{name: "days word", input: "30days", want: 30 * 24 * time.Hour},
		{name: "week", input: "1week", want: 7 * 24 * time.Hour},
		{name: "weeks word", input: "3weeks", want: 21 * 24 * time.Hour},
		{name: "space before unit", input: "3 weeks", want: 21 * 24 * time.Hour},

		{name: "zero", input: "0d", want: 0},
		{name: "surrounding whitespace", input: " 24h ", want: 24 * time.Hour},

		// Errors
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "  ", wantErr: true},
		{name: "missing unit", input: "24", wantErr: true},
		{name: "missing number", input: "d", wantErr: true},
		{name: "unknown unit", input: "2y", wantErr: true},
		{name: "milliseconds", input: "500ms", wantErr: true},
		{name: "negative", input: "-1d", wantErr: true},
		{name: "fraction", input: "1.5d", wantErr: true},
		{name: "combined units", input: "1d12h", wantErr: true},
		{name: "overflow", input: "99999999999w", wantErr: true},
		{name: "word", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
