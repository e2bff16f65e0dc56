package standings

import "sort"

// TeammateSort selects the ordering of a teammate-gap table.
type TeammateSort int

const (
	// SortClassification keeps the best-lap ranking order.
	SortClassification TeammateSort = iota
	// SortBiggestGap orders by absolute gap, largest first.
	SortBiggestGap
)

// GapsToReference annotates a ranked best-lap table with each driver's
// gap to the session reference, the position 1 lap. The reference row
// gets a gap of exactly 0; every other gap is non-negative because the
// input is sorted by lap time.
func GapsToReference(rows []ResultRow) []ResultRow {
	if len(rows) == 0 {
		return nil
	}
	reference := rows[0].LapTime
	out := make([]ResultRow, len(rows))
	for i, row := range rows {
		row.Gap = row.LapTime - reference
		row.HasGap = true
		out[i] = row
	}
	return out
}

// GapsToTeammate annotates a ranked best-lap table with intra-team gaps.
// Within a team of two or more cars, the fastest car is measured against
// the second fastest (gap <= 0, how far clear of the next-best teammate)
// and every other car against the fastest (gap >= 0). A driver with no
// teammate in the table keeps HasGap false; their gap is not a
// measurement.
func GapsToTeammate(rows []ResultRow, order TeammateSort) []ResultRow {
	byTeam := map[string][]float64{}
	for _, row := range rows {
		byTeam[row.Team] = append(byTeam[row.Team], row.LapTime)
	}
	for _, times := range byTeam {
		sort.Float64s(times)
	}

	out := make([]ResultRow, len(rows))
	for i, row := range rows {
		times := byTeam[row.Team]
		if len(times) < 2 {
			row.Gap = 0
			row.HasGap = false
		} else if row.LapTime == times[0] {
			row.Gap = row.LapTime - times[1]
			row.HasGap = true
		} else {
			row.Gap = row.LapTime - times[0]
			row.HasGap = true
		}
		out[i] = row
	}

	if order == SortBiggestGap {
		sort.SliceStable(out, func(i, j int) bool {
			return abs(out[i].Gap) > abs(out[j].Gap)
		})
	}
	return out
}

// MaxGap is the largest gap in the table, used to scale gap bars. Tables
// where every gap is zero scale against 1 so bars stay finite.
func MaxGap(rows []ResultRow) float64 {
	max := 0.0
	for _, row := range rows {
		if row.HasGap && row.Gap > max {
			max = row.Gap
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
