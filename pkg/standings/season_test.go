package standings

import (
	"testing"

	"github.com/louisuk-data/logicaf1/pkg/laps"
)

func pointsLap(driver string, round int, session laps.SessionType, points float64) laps.Lap {
	return laps.Lap{
		Driver:         driver,
		Team:           "Team " + driver,
		Year:           2025,
		Round:          round,
		Session:        session,
		LapNumber:      1,
		LapTime:        90,
		OfficialPoints: points,
	}
}

func rowFor(t *testing.T, rows []PointsRow, driver string, round int, session laps.SessionType) PointsRow {
	t.Helper()
	for _, row := range rows {
		if row.Driver == driver && row.Round == round && row.Session == session {
			return row
		}
	}
	t.Fatalf("no points row for %s round %d %s", driver, round, session)
	return PointsRow{}
}

func TestSeasonTotals_RunningTotals(t *testing.T) {
	rows := []laps.Lap{
		pointsLap("A", 1, laps.SessionRace, 25),
		pointsLap("B", 1, laps.SessionRace, 18),
		pointsLap("A", 2, laps.SessionRace, 18),
	}

	totals := SeasonTotals(rows)

	if got := rowFor(t, totals, "A", 2, laps.SessionRace).RunningTotal; got != 43 {
		t.Errorf("A's running total after round 2 = %v, want 43", got)
	}
	if got := rowFor(t, totals, "B", 1, laps.SessionRace).RunningTotal; got != 18 {
		t.Errorf("B's running total = %v, want 18", got)
	}
	if got := rowFor(t, totals, "A", 1, laps.SessionRace).SeasonTotal; got != 43 {
		t.Errorf("A's season total = %v, want 43", got)
	}
}

func TestSeasonTotals_DuplicateRowsAreIdempotent(t *testing.T) {
	single := SeasonTotals([]laps.Lap{
		pointsLap("A", 1, laps.SessionRace, 25),
	})
	duplicated := SeasonTotals([]laps.Lap{
		pointsLap("A", 1, laps.SessionRace, 25),
		pointsLap("A", 1, laps.SessionRace, 25),
		pointsLap("A", 1, laps.SessionRace, 25),
	})

	want := rowFor(t, single, "A", 1, laps.SessionRace).SeasonTotal
	got := rowFor(t, duplicated, "A", 1, laps.SessionRace).SeasonTotal
	if got != want {
		t.Errorf("duplicated rows changed the total: %v, want %v", got, want)
	}
}

func TestSeasonTotals_SprintBeforeRaceWithinRound(t *testing.T) {
	rows := []laps.Lap{
		pointsLap("A", 1, laps.SessionRace, 25),
		pointsLap("A", 1, laps.SessionSprint, 8),
	}

	totals := SeasonTotals(rows)

	if got := rowFor(t, totals, "A", 1, laps.SessionSprint).RunningTotal; got != 8 {
		t.Errorf("sprint running total = %v, want 8 (sprint counts first)", got)
	}
	if got := rowFor(t, totals, "A", 1, laps.SessionRace).RunningTotal; got != 33 {
		t.Errorf("race running total = %v, want 33", got)
	}
}

func TestSeasonTotals_OrderIndependentSeasonTotal(t *testing.T) {
	forward := []laps.Lap{
		pointsLap("A", 1, laps.SessionRace, 25),
		pointsLap("A", 2, laps.SessionRace, 18),
		pointsLap("A", 3, laps.SessionRace, 15),
	}
	backward := []laps.Lap{forward[2], forward[0], forward[1]}

	a := rowFor(t, SeasonTotals(forward), "A", 3, laps.SessionRace).SeasonTotal
	b := rowFor(t, SeasonTotals(backward), "A", 3, laps.SessionRace).SeasonTotal
	if a != b || a != 58 {
		t.Errorf("season total depends on input order: %v vs %v, want 58", a, b)
	}
}

func TestSeasonTotals_MissedRoundDoesNotBreakChain(t *testing.T) {
	rows := []laps.Lap{
		pointsLap("A", 1, laps.SessionRace, 25),
		pointsLap("B", 1, laps.SessionRace, 18),
		pointsLap("B", 2, laps.SessionRace, 25), // A missed round 2
		pointsLap("A", 3, laps.SessionRace, 25),
	}

	totals := SeasonTotals(rows)

	if got := rowFor(t, totals, "A", 3, laps.SessionRace).RunningTotal; got != 50 {
		t.Errorf("A's running total after a missed round = %v, want 50", got)
	}
	if got := rowFor(t, totals, "B", 2, laps.SessionRace).RunningTotal; got != 43 {
		t.Errorf("B's running total = %v, want 43", got)
	}
}

func TestSeasonStandings(t *testing.T) {
	rows := []laps.Lap{
		pointsLap("A", 1, laps.SessionRace, 25),
		pointsLap("B", 1, laps.SessionRace, 18),
		pointsLap("B", 2, laps.SessionRace, 25),
		pointsLap("A", 2, laps.SessionRace, 10),
	}

	table := SeasonStandings(rows)

	if len(table) != 2 {
		t.Fatalf("SeasonStandings() returned %d rows, want 2", len(table))
	}
	if table[0].Driver != "B" || table[0].Points != 43 || table[0].Position != 1 {
		t.Errorf("leader = %s %.0f pos %d, want B 43 pos 1", table[0].Driver, table[0].Points, table[0].Position)
	}
	if table[1].Driver != "A" || table[1].Points != 35 {
		t.Errorf("second = %s %.0f, want A 35", table[1].Driver, table[1].Points)
	}
}

func TestClassification(t *testing.T) {
	mk := func(driver, pos, status string, points float64, times ...float64) []laps.Lap {
		var out []laps.Lap
		for i, lt := range times {
			out = append(out, laps.Lap{
				Driver: driver, Team: "Team " + driver, Year: 2025, Round: 1,
				Session: laps.SessionRace, LapNumber: i + 1, LapTime: lt,
				OfficialPos: pos, OfficialPoints: points, Status: status,
			})
		}
		return out
	}

	var rows []laps.Lap
	rows = append(rows, mk("W", "1", "Finished", 25, 90, 91, 92)...)
	rows = append(rows, mk("P2", "2", "Finished", 18, 91, 92, 93)...)
	rows = append(rows, mk("R", "NC", "Accident", 0, 95)...)

	results := Classification(rows)

	if len(results) != 3 {
		t.Fatalf("Classification() returned %d rows, want 3", len(results))
	}
	if results[0].Driver != "W" || results[0].GapToWinner != 0 {
		t.Errorf("winner = %s gap %.3f, want W gap 0", results[0].Driver, results[0].GapToWinner)
	}
	if results[0].TotalTime != 273 {
		t.Errorf("winner total time = %v, want 273", results[0].TotalTime)
	}
	if results[1].GapToWinner != 3 {
		t.Errorf("P2 gap to winner = %v, want 3", results[1].GapToWinner)
	}
	if results[2].Driver != "R" {
		t.Errorf("unclassified driver must sort last, got %s", results[2].Driver)
	}
	if results[2].Finished() {
		t.Error("driver with Accident status reported as finished")
	}
	if !results[1].Finished() {
		t.Error("classified finisher reported as not finished")
	}
}

func TestPaceSeries(t *testing.T) {
	var rows []laps.Lap
	for i := 1; i <= 10; i++ {
		rows = append(rows, laps.Lap{Driver: "A", LapNumber: i, LapTime: 90})
	}
	// B retired after a single lap of a ten-lap race.
	rows = append(rows, laps.Lap{Driver: "B", LapNumber: 1, LapTime: 91})

	series := PaceSeries(rows)

	if len(series) != 1 || series[0].Driver != "A" {
		t.Fatalf("PaceSeries() should keep only drivers with a meaningful run, got %d series", len(series))
	}
	pts := series[0].Points
	if pts[len(pts)-1].Cumulative != 900 {
		t.Errorf("cumulative after 10 laps = %v, want 900", pts[len(pts)-1].Cumulative)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Cumulative <= pts[i-1].Cumulative {
			t.Errorf("cumulative series must be increasing at %d", i)
		}
	}
}
