// Package standings turns raw per-lap rows into ranked, gap-annotated,
// season-cumulative result tables. Everything in here is a pure
// transformation over an in-memory lap table: no I/O, no retries, and
// malformed rows were already reduced to missing values at the ingest
// boundary. A session with no valid laps yields empty results, never an
// error.
package standings

import (
	"sort"

	"github.com/louisuk-data/logicaf1/pkg/laps"
)

// ResultRow is one driver's derived result for a session: their best
// lap, its 1-based rank by lap time, and a gap relative to a reference
// chosen by the gap mode. HasGap is false when there was nothing to
// compare against (a driver whose team fielded no second car); a bare
// zero gap would be indistinguishable from a dead heat.
type ResultRow struct {
	laps.Lap
	Position int
	Gap      float64
	HasGap   bool
}

// BestLaps collapses a session's laps to one row per driver, keeping
// each driver's fastest valid lap, and ranks the rows ascending by lap
// time. Laps without a valid time are discarded first; a driver with no
// valid lap does not appear at all. Ties keep the original row order.
// The rank is pace order and deliberately ignores OfficialPos, which
// reflects race classification.
func BestLaps(rows []laps.Lap) []ResultRow {
	best := map[string]laps.Lap{}
	order := []string{}
	for _, lap := range rows {
		if !lap.HasLapTime() {
			continue
		}
		current, seen := best[lap.Driver]
		if !seen {
			best[lap.Driver] = lap
			order = append(order, lap.Driver)
			continue
		}
		if lap.LapTime < current.LapTime {
			best[lap.Driver] = lap
		}
	}

	result := make([]ResultRow, 0, len(order))
	for _, driver := range order {
		result = append(result, ResultRow{Lap: best[driver]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LapTime < result[j].LapTime
	})
	for i := range result {
		result[i].Position = i + 1
	}
	return result
}
