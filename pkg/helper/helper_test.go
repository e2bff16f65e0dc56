package helper

import "testing"

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"UnderMinute", 59.999, "59.999"},
		{"OverMinute", 90.123, "1:30.123"},
		{"MinutesUnpadded", 611.045, "10:11.045"},
		{"RaceTotal", 5523.456, "1:32:03.456"},
		{"ExactMinute", 60.0, "1:00.000"},
		{"RoundsUpToMinute", 59.9996, "1:00.000"},
		{"Missing", 0, "-"},
		{"Negative", -1, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLapTime(tt.seconds); got != tt.want {
				t.Errorf("FormatLapTime(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatGap(t *testing.T) {
	if got := FormatGap(1.333); got != "+1.333s" {
		t.Errorf("FormatGap(1.333) = %q, want +1.333s", got)
	}
	if got := FormatSignedGap(-0.25); got != "-0.250s" {
		t.Errorf("FormatSignedGap(-0.25) = %q, want -0.250s", got)
	}
	if got := FormatSignedGap(0.25); got != "+0.250s" {
		t.Errorf("FormatSignedGap(0.25) = %q, want +0.250s", got)
	}
}

func TestFormatPoints(t *testing.T) {
	tests := []struct {
		points float64
		want   string
	}{
		{25, "25"},
		{0, "0"},
		{18.5, "18.5"},
	}
	for _, tt := range tests {
		if got := FormatPoints(tt.points); got != tt.want {
			t.Errorf("FormatPoints(%v) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestToSectorTime(t *testing.T) {
	if got := ToSectorTime(31.2); got != "31.200" {
		t.Errorf("ToSectorTime(31.2) = %q, want 31.200", got)
	}
	if got := ToSectorTime(0); got != "-" {
		t.Errorf("ToSectorTime(0) = %q, want -", got)
	}
}

func TestGetDriverCodeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lewis Hamilton", "LHA"},
		{"Max", "MAX"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := GetDriverCodeName(tt.name); got != tt.want {
			t.Errorf("GetDriverCodeName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
