package laps

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"PlainSeconds", "91.123", 91.123},
		{"MinutesSeconds", "1:31.123", 91.123},
		{"ClockFormat", "00:01:31.123", 91.123},
		{"ProviderTimedelta", "0 days 00:01:31.123000", 91.123},
		{"TimedeltaWithDays", "1 days 00:00:01", 86401},
		{"Empty", "", 0},
		{"Whitespace", "   ", 0},
		{"Garbage", "not-a-time", 0},
		{"NaNExport", "NaT", 0},
		{"Zero", "0", 0},
		{"Negative", "-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDuration(tt.value)
			diff := got - tt.want
			if diff < -1e-9 || diff > 1e-9 {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParsePoints(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"25", 25},
		{"18.5", 18.5},
		{"", 0},
		{"NaN", 0},
		{"-3", 0},
	}
	for _, tt := range tests {
		if got := ParsePoints(tt.value); got != tt.want {
			t.Errorf("ParsePoints(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSessionTypeOrder(t *testing.T) {
	if SessionSprint.Order() >= SessionRace.Order() {
		t.Error("sprints must order before races within a round")
	}
	if SessionQualifying.Order() != SessionRace.Order() {
		// Qualifying points rows are rare but must not collide with sprints.
		t.Error("qualifying orders with the race block")
	}
}

func TestSchemaOptionalColumns(t *testing.T) {
	header := []string{"Driver", "Team", "Year", "RoundNumber", "EventName", "LapNumber", "LapTime"}
	sch, ok := newSchema(header)
	if !ok {
		t.Fatal("header with all required columns rejected")
	}

	rec := []string{"VER", "Red Bull Racing", "2025", "3", "Bahrain Grand Prix", "12", "1:31.123"}
	lap := sch.lap(rec, SessionRace)

	if lap.Driver != "VER" || lap.Round != 3 || lap.LapNumber != 12 {
		t.Errorf("unexpected lap fields: %+v", lap)
	}
	if lap.Session != SessionRace {
		t.Errorf("missing Session column must fall back to the file's session type, got %q", lap.Session)
	}
	if lap.OfficialPos != "" || lap.OfficialPoints != 0 || lap.Status != "" {
		t.Errorf("absent optional columns must degrade to zero values: %+v", lap)
	}
}

func TestSchemaMissingRequiredColumn(t *testing.T) {
	header := []string{"Driver", "Team", "Year"}
	if _, ok := newSchema(header); ok {
		t.Error("header without LapTime accepted")
	}
}
