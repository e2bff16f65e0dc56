package standings

import (
	"sort"

	"github.com/louisuk-data/logicaf1/pkg/laps"
)

// PointsRow is one driver's points for one (round, session) group, with
// the running total through that session and the full-season total.
type PointsRow struct {
	Driver       string
	Round        int
	Session      laps.SessionType
	Points       float64
	RunningTotal float64
	SeasonTotal  float64
}

// SeasonTotals reduces a season's laps to per-(driver, round, session)
// points with running cumulative sums. Each group's points value is the
// maximum over its rows, so duplicated rows from upstream merges are
// idempotent rather than additive. Groups are ordered by round, then by
// session precedence (sprints before races within a round), and the
// running total follows that order. The season total is the plain sum
// over all groups, independent of ordering. A driver absent from a
// round simply contributes nothing for it; their chain continues at the
// next round they appear in.
func SeasonTotals(rows []laps.Lap) []PointsRow {
	type key struct {
		driver  string
		round   int
		order   int
		session laps.SessionType
	}
	points := map[key]float64{}
	for _, lap := range rows {
		k := key{driver: lap.Driver, round: lap.Round, order: lap.Session.Order(), session: lap.Session}
		if p, ok := points[k]; !ok || lap.OfficialPoints > p {
			points[k] = lap.OfficialPoints
		}
	}

	groups := make([]PointsRow, 0, len(points))
	for k, p := range points {
		groups = append(groups, PointsRow{
			Driver:  k.driver,
			Round:   k.round,
			Session: k.session,
			Points:  p,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Round != groups[j].Round {
			return groups[i].Round < groups[j].Round
		}
		if groups[i].Session.Order() != groups[j].Session.Order() {
			return groups[i].Session.Order() < groups[j].Session.Order()
		}
		return groups[i].Driver < groups[j].Driver
	})

	running := map[string]float64{}
	season := map[string]float64{}
	for _, g := range groups {
		season[g.Driver] += g.Points
	}
	for i := range groups {
		running[groups[i].Driver] += groups[i].Points
		groups[i].RunningTotal = running[groups[i].Driver]
		groups[i].SeasonTotal = season[groups[i].Driver]
	}
	return groups
}

// TotalsAt indexes season totals by driver for one (round, session)
// group, the shape the race dashboard joins against its classification.
func TotalsAt(rows []PointsRow, round int, session laps.SessionType) map[string]PointsRow {
	out := map[string]PointsRow{}
	for _, row := range rows {
		if row.Round == round && row.Session.Order() == session.Order() {
			out[row.Driver] = row
		}
	}
	return out
}

// SeasonStanding is one line of the championship table.
type SeasonStanding struct {
	Position int
	Driver   string
	Team     string
	Points   float64
}

// SeasonStandings ranks drivers by full-season points, descending.
// Drivers on equal points keep name order so the table is stable.
// The team shown is the driver's most recent one in the data.
func SeasonStandings(rows []laps.Lap) []SeasonStanding {
	totals := SeasonTotals(rows)

	team := map[string]string{}
	lastRound := map[string]int{}
	for _, lap := range rows {
		if lap.Team == "" {
			continue
		}
		if lap.Round >= lastRound[lap.Driver] {
			lastRound[lap.Driver] = lap.Round
			team[lap.Driver] = lap.Team
		}
	}

	seen := map[string]bool{}
	var table []SeasonStanding
	for _, row := range totals {
		if seen[row.Driver] {
			continue
		}
		seen[row.Driver] = true
		table = append(table, SeasonStanding{
			Driver: row.Driver,
			Team:   team[row.Driver],
			Points: row.SeasonTotal,
		})
	}
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].Driver < table[j].Driver
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table
}
