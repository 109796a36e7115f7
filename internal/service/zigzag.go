package service

import "github.com/fundlens/fundlens/internal/model"

// Pivot directions.
const (
	PivotPeak   = "peak"
	PivotTrough = "trough"
)

// DetectPivots compresses a NAV series into its major trend turning points
// using a minimum-retracement (zigzag) rule: a running extremum is committed
// as a pivot the moment the series reverses from it by at least deviationPct
// percent.
//
// The first data point is always included. The terminal data point is
// appended when its value differs from the last committed pivot, so the
// final (possibly unfinished) leg is visible. Returned pivots strictly
// alternate peak/trough and consecutive pivots differ by at least
// deviationPct percent.
//
// Fewer than two points, or a non-positive deviation, yields nil.
func DetectPivots(series model.NAVSeries, deviationPct float64) []model.PivotPoint {
	if len(series) < 2 || deviationPct <= 0 {
		return nil
	}

	pivots := []model.PivotPoint{pivotFrom(series[0], PivotTrough)}

	// Scan forward until the cumulative move from the first point exceeds
	// the threshold; that fixes the initial direction.
	up := false
	start := 0
	found := false
	for i := 1; i < len(series); i++ {
		change := percentChange(series[0].UnitNAV, series[i].UnitNAV)
		if change >= deviationPct {
			up = true
			start = i
			found = true
			break
		}
		if change <= -deviationPct {
			up = false
			start = i
			found = true
			break
		}
	}
	if !found {
		// The whole series never moves past the threshold; only the
		// endpoints remain.
		last := series[len(series)-1]
		if last.UnitNAV != pivots[0].UnitNAV {
			pivots[0].Direction = directionOf(pivots[0].UnitNAV, last.UnitNAV)
			pivots = append(pivots, pivotFrom(last, opposite(pivots[0].Direction)))
		}
		return pivots
	}

	if up {
		pivots[0].Direction = PivotTrough
	} else {
		pivots[0].Direction = PivotPeak
	}

	extreme := series[start]
	for i := start + 1; i < len(series); i++ {
		point := series[i]
		if up {
			if point.UnitNAV > extreme.UnitNAV {
				extreme = point
				continue
			}
			if percentChange(extreme.UnitNAV, point.UnitNAV) <= -deviationPct {
				pivots = append(pivots, pivotFrom(extreme, PivotPeak))
				up = false
				extreme = point
			}
		} else {
			if point.UnitNAV < extreme.UnitNAV {
				extreme = point
				continue
			}
			if percentChange(extreme.UnitNAV, point.UnitNAV) >= deviationPct {
				pivots = append(pivots, pivotFrom(extreme, PivotTrough))
				up = true
				extreme = point
			}
		}
	}

	// Terminal pivot: the last data point closes the final, possibly
	// unfinished leg.
	last := series[len(series)-1]
	lastPivot := pivots[len(pivots)-1]
	if last.UnitNAV != lastPivot.UnitNAV {
		pivots = append(pivots, pivotFrom(last, opposite(lastPivot.Direction)))
	}

	return pivots
}

func pivotFrom(p model.NAVPoint, direction string) model.PivotPoint {
	return model.PivotPoint{Date: p.Date, UnitNAV: p.UnitNAV, Direction: direction}
}

func percentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

func directionOf(from, to float64) string {
	if to > from {
		return PivotTrough
	}
	return PivotPeak
}

func opposite(direction string) string {
	if direction == PivotPeak {
		return PivotTrough
	}
	return PivotPeak
}
