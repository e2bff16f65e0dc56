package apps

import (
	"strings"
	"testing"

	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/standings"
)

func qualyRows() []standings.ResultRow {
	session := []laps.Lap{
		{Driver: "Max Verstappen", Team: "Red Bull Racing", LapTime: 89.456},
		{Driver: "Lewis Hamilton", Team: "Mercedes", LapTime: 90.123},
		{Driver: "George Russell", Team: "Mercedes", LapTime: 90.789},
	}
	return standings.BestLaps(session)
}

func TestQualifyingTablePoleMode(t *testing.T) {
	body := qualifyingTable(standings.GapsToReference(qualyRows()), false)

	if !strings.Contains(body, "POLE") {
		t.Error("fastest driver should be labeled POLE, not +0.000s")
	}
	if !strings.Contains(body, "+0.667s") {
		t.Errorf("expected P2 gap to pole in table:\n%s", body)
	}
	if !strings.Contains(body, "1:29.456") {
		t.Errorf("expected formatted lap time in table:\n%s", body)
	}
}

func TestQualifyingTableTeammateMode(t *testing.T) {
	body := qualifyingTable(standings.GapsToTeammate(qualyRows(), standings.SortClassification), true)

	// Verstappen has no teammate in the table.
	if !strings.Contains(body, "MVE") || !strings.Contains(body, "-") {
		t.Errorf("driver without a teammate should show %q:\n%s", "-", body)
	}
	// Hamilton is the faster Mercedes: measured against Russell, negative.
	if !strings.Contains(body, "-0.666s") {
		t.Errorf("expected the faster teammate's negative gap:\n%s", body)
	}
	if !strings.Contains(body, "+0.666s") {
		t.Errorf("expected the slower teammate's positive gap:\n%s", body)
	}
}

func TestEventListFormatting(t *testing.T) {
	rows := []laps.Lap{
		{Driver: "Max Verstappen", Year: 2025, Round: 2, Event: "Jeddah", Session: laps.SessionQualifying, LapNumber: 1, LapTime: 88},
		{Driver: "Max Verstappen", Year: 2025, Round: 1, Event: "Sakhir", Session: laps.SessionQualifying, LapNumber: 1, LapTime: 91},
	}
	out := eventList(rows, 2025, "q")
	if !strings.Contains(out, "/q_2025_1") || !strings.Contains(out, "/q_2025_2") {
		t.Errorf("expected one command per round, got:\n%s", out)
	}
	if strings.Index(out, "Sakhir") > strings.Index(out, "Jeddah") {
		t.Errorf("events should come out in round order:\n%s", out)
	}
}
