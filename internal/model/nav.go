package model

import "time"

// NAVPoint is one day's net asset value for a fund.
// Estimated marks the synthetic trailing point derived from a real-time
// estimate for the current, unsettled session; estimated points exist only
// in derived series and are never written to the nav_price table.
type NAVPoint struct {
	Date            time.Time `json:"date"`
	UnitNAV         float64   `json:"unitNav"`
	DailyGrowthRate float64   `json:"dailyGrowthRate"` // percent
	Estimated       bool      `json:"estimated,omitempty"`
}

// NAVSeries is a fund's NAV history ordered by date ascending.
type NAVSeries []NAVPoint

// Latest returns the most recent point of the series.
// The second return value is false for an empty series.
func (s NAVSeries) Latest() (NAVPoint, bool) {
	if len(s) == 0 {
		return NAVPoint{}, false
	}
	return s[len(s)-1], true
}

// Previous returns the second most recent point of the series.
func (s NAVSeries) Previous() (NAVPoint, bool) {
	if len(s) < 2 {
		return NAVPoint{}, false
	}
	return s[len(s)-2], true
}

// OnDate returns the point for the exact calendar date, if present.
func (s NAVSeries) OnDate(date time.Time) (NAVPoint, bool) {
	day := date.UTC().Truncate(24 * time.Hour)
	for _, p := range s {
		if p.Date.UTC().Truncate(24 * time.Hour).Equal(day) {
			return p, true
		}
	}
	return NAVPoint{}, false
}

// WithEstimate returns a copy of the series with the real-time estimate
// appended as a synthetic trailing point. If the estimate falls on the same
// date as the last confirmed point, the series is returned unchanged: the
// session has already settled.
func (s NAVSeries) WithEstimate(est *RealtimeEstimate) NAVSeries {
	if est == nil || len(s) == 0 {
		return s
	}
	last := s[len(s)-1]
	day := est.EstimationTime.UTC().Truncate(24 * time.Hour)
	if !day.After(last.Date.UTC().Truncate(24 * time.Hour)) {
		return s
	}
	out := make(NAVSeries, len(s), len(s)+1)
	copy(out, s)
	return append(out, NAVPoint{
		Date:            day,
		UnitNAV:         est.EstimatedNAV,
		DailyGrowthRate: est.EstimatedChangePct,
		Estimated:       true,
	})
}

// RealtimeEstimate is an intraday NAV estimate from the external provider.
type RealtimeEstimate struct {
	Code               string    `json:"code"`
	EstimatedNAV       float64   `json:"estimatedNav"`
	EstimatedChangePct float64   `json:"estimatedChangePct"`
	EstimationTime     time.Time `json:"estimationTime"`
}

// PivotPoint is a local extremum retained by the trend detector.
type PivotPoint struct {
	Date      time.Time `json:"date"`
	UnitNAV   float64   `json:"unitNav"`
	Direction string    `json:"direction"` // "peak" or "trough"
}
