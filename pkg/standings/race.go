package standings

import (
	"sort"
	"strconv"

	"github.com/louisuk-data/logicaf1/pkg/laps"
)

// unclassifiedPos sorts drivers without a numeric official position
// behind every classified car.
const unclassifiedPos = 999

// RaceResult is one driver's classification line for a race or sprint:
// official order, points, aggregate race time and gap to the winner.
type RaceResult struct {
	Driver      string
	Team        string
	OfficialPos string
	SortPos     int
	Points      float64
	Status      string
	Laps        int
	TotalTime   float64
	GapToWinner float64
}

// Finished reports whether the driver completed the race, possibly
// lapped. Anything else shows its status string instead of a time.
func (r RaceResult) Finished() bool {
	switch r.Status {
	case "Finished", "", "+1 Lap", "+2 Laps", "+3 Laps":
		return true
	}
	return false
}

// Classification collapses one race session's laps into official-order
// results. Total race time is the sum of the driver's valid lap times;
// the winner's gap is 0 and everyone else is measured against the
// winner's total. Drivers without a numeric official position (status
// codes such as "NC" or "R") sort to the back, keeping lap-table order
// among themselves.
func Classification(rows []laps.Lap) []RaceResult {
	byDriver := map[string]*RaceResult{}
	order := []string{}
	for _, lap := range rows {
		r, ok := byDriver[lap.Driver]
		if !ok {
			pos := unclassifiedPos
			if n, err := strconv.Atoi(lap.OfficialPos); err == nil {
				pos = n
			}
			r = &RaceResult{
				Driver:      lap.Driver,
				Team:        lap.Team,
				OfficialPos: lap.OfficialPos,
				SortPos:     pos,
				Points:      lap.OfficialPoints,
				Status:      lap.Status,
			}
			byDriver[lap.Driver] = r
			order = append(order, lap.Driver)
		}
		r.Laps++
		if lap.HasLapTime() {
			r.TotalTime += lap.LapTime
		}
	}

	results := make([]RaceResult, 0, len(order))
	for _, driver := range order {
		results = append(results, *byDriver[driver])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SortPos < results[j].SortPos
	})

	if len(results) > 0 {
		winner := results[0].TotalTime
		for i := range results {
			results[i].GapToWinner = results[i].TotalTime - winner
		}
	}
	return results
}

// PacePoint is one driver's cumulative race time after a given lap.
type PacePoint struct {
	LapNumber  int
	Cumulative float64
}

// DriverPace is the cumulative-time series the pace chart plots.
type DriverPace struct {
	Driver string
	Points []PacePoint
}

// PaceSeries builds per-driver cumulative lap time series for a session.
// Drivers who covered less than a fifth of the longest run are dropped;
// a two-lap retirement tells nothing about pace.
func PaceSeries(rows []laps.Lap) []DriverPace {
	byDriver := map[string][]laps.Lap{}
	order := []string{}
	maxLap := 0
	for _, lap := range rows {
		if !lap.HasLapTime() {
			continue
		}
		if _, ok := byDriver[lap.Driver]; !ok {
			order = append(order, lap.Driver)
		}
		byDriver[lap.Driver] = append(byDriver[lap.Driver], lap)
		if lap.LapNumber > maxLap {
			maxLap = lap.LapNumber
		}
	}

	var series []DriverPace
	for _, driver := range order {
		run := byDriver[driver]
		sort.SliceStable(run, func(i, j int) bool {
			return run[i].LapNumber < run[j].LapNumber
		})
		last := run[len(run)-1].LapNumber
		if float64(last) <= float64(maxLap)*0.2 {
			continue
		}
		cumulative := 0.0
		points := make([]PacePoint, 0, len(run))
		for _, lap := range run {
			cumulative += lap.LapTime
			points = append(points, PacePoint{LapNumber: lap.LapNumber, Cumulative: cumulative})
		}
		series = append(series, DriverPace{Driver: driver, Points: points})
	}
	return series
}
