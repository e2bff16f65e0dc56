package laps

import (
	"strconv"
	"strings"
)

type SessionType string

const (
	SessionQualifying SessionType = "Qualifying"
	SessionSprint     SessionType = "Sprint"
	SessionRace       SessionType = "Race"
)

// Order is the chronological precedence of a session within a round.
// Sprints run before the race on the same weekend.
func (s SessionType) Order() int {
	if strings.Contains(string(s), "Sprint") {
		return 1
	}
	return 2
}

// Lap is one driver's timing data for one lap of one session.
// Durations are seconds; 0 means the value is missing or could not be
// parsed. OfficialPos is a string because non-finishers carry status
// codes ("NC", "R", "D") instead of a rank.
type Lap struct {
	Driver         string      `json:"driver"`
	Team           string      `json:"team"`
	Year           int         `json:"year"`
	Round          int         `json:"round"`
	Event          string      `json:"event"`
	Session        SessionType `json:"session"`
	LapNumber      int         `json:"lapNumber"`
	LapTime        float64     `json:"lapTime"`
	S1             float64     `json:"s1"`
	S2             float64     `json:"s2"`
	S3             float64     `json:"s3"`
	OfficialPos    string      `json:"officialPos"`
	OfficialPoints float64     `json:"officialPoints"`
	Status         string      `json:"status"`
}

// HasLapTime reports whether the lap carries a valid lap time. Laps
// without one are excluded from every ranking.
func (l Lap) HasLapTime() bool {
	return l.LapTime > 0
}

// ParseDuration converts a duration string to seconds. It accepts plain
// seconds ("91.123"), clock formats ("1:31.123", "00:01:31.123") and the
// timedelta format the timing provider exports ("0 days 00:01:31.123000").
// Anything malformed or empty parses to 0, the missing-value marker;
// malformed input is missing data, not an error.
func ParseDuration(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	days := 0.0
	if idx := strings.Index(value, "days"); idx > 0 {
		d, err := strconv.Atoi(strings.TrimSpace(value[:idx]))
		if err != nil {
			return 0
		}
		days = float64(d)
		value = strings.TrimSpace(value[idx+len("days"):])
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0
	}
	seconds := 0.0
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0
		}
		seconds = seconds*60 + f
	}
	seconds += days * 24 * 3600

	if seconds <= 0 {
		return 0
	}
	return seconds
}

// ParsePoints converts a points column value to a number. Missing or
// malformed points default to 0.
func ParsePoints(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
