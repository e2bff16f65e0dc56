package laps

import (
	"strconv"
	"strings"
)

// CSV column names, matching the files written by the ingest loop. The
// first block is required; the official-result columns are optional and
// degrade to zero values when a file predates the results merge.
const (
	colDriver    = "Driver"
	colTeam      = "Team"
	colYear      = "Year"
	colRound     = "RoundNumber"
	colEvent     = "EventName"
	colSession   = "Session"
	colLapNumber = "LapNumber"
	colLapTime   = "LapTime"
	colS1        = "Sector1Time"
	colS2        = "Sector2Time"
	colS3        = "Sector3Time"
	colPos       = "OfficialPos"
	colPoints    = "OfficialPoints"
	colStatus    = "Status"
)

// Columns is the canonical column order for lap CSV files.
var Columns = []string{
	colDriver, colTeam, colYear, colRound, colEvent, colSession,
	colLapNumber, colLapTime, colS1, colS2, colS3,
	colPos, colPoints, colStatus,
}

var requiredColumns = []string{
	colDriver, colTeam, colYear, colRound, colEvent, colLapNumber, colLapTime,
}

// schema maps column names to their index in a specific file's header.
// Optional columns that are absent resolve to -1 and read as "".
type schema map[string]int

func newSchema(header []string) (schema, bool) {
	s := schema{}
	for _, col := range Columns {
		s[col] = -1
	}
	for i, name := range header {
		s[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if s[col] < 0 {
			return nil, false
		}
	}
	return s, true
}

func (s schema) text(record []string, col string) string {
	idx := s[col]
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (s schema) integer(record []string, col string) int {
	n, err := strconv.Atoi(s.text(record, col))
	if err != nil {
		return 0
	}
	return n
}

func (s schema) lap(record []string, fallback SessionType) Lap {
	session := SessionType(s.text(record, colSession))
	if session == "" {
		session = fallback
	}
	return Lap{
		Driver:         s.text(record, colDriver),
		Team:           s.text(record, colTeam),
		Year:           s.integer(record, colYear),
		Round:          s.integer(record, colRound),
		Event:          s.text(record, colEvent),
		Session:        session,
		LapNumber:      s.integer(record, colLapNumber),
		LapTime:        ParseDuration(s.text(record, colLapTime)),
		S1:             ParseDuration(s.text(record, colS1)),
		S2:             ParseDuration(s.text(record, colS2)),
		S3:             ParseDuration(s.text(record, colS3)),
		OfficialPos:    s.text(record, colPos),
		OfficialPoints: ParsePoints(s.text(record, colPoints)),
		Status:         s.text(record, colStatus),
	}
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	return strconv.FormatFloat(seconds, 'f', 6, 64)
}

func record(l Lap) []string {
	points := ""
	if l.OfficialPoints > 0 {
		points = strconv.FormatFloat(l.OfficialPoints, 'f', -1, 64)
	}
	return []string{
		l.Driver,
		l.Team,
		strconv.Itoa(l.Year),
		strconv.Itoa(l.Round),
		l.Event,
		string(l.Session),
		strconv.Itoa(l.LapNumber),
		formatSeconds(l.LapTime),
		formatSeconds(l.S1),
		formatSeconds(l.S2),
		formatSeconds(l.S3),
		l.OfficialPos,
		points,
		l.Status,
	}
}
