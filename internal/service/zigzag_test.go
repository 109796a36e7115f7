package service

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlens/fundlens/internal/model"
)

func navSeries(values ...float64) model.NAVSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(model.NAVSeries, len(values))
	for i, v := range values {
		series[i] = model.NAVPoint{Date: start.AddDate(0, 0, i), UnitNAV: v}
	}
	return series
}

func TestDetectPivotsBasic(t *testing.T) {
	series := navSeries(1.00, 1.02, 1.05, 1.03, 0.98, 1.01)

	pivots := DetectPivots(series, 3)

	require.Len(t, pivots, 4)
	assert.InDelta(t, 1.00, pivots[0].UnitNAV, 1e-9)
	assert.Equal(t, PivotTrough, pivots[0].Direction)
	assert.InDelta(t, 1.05, pivots[1].UnitNAV, 1e-9)
	assert.Equal(t, PivotPeak, pivots[1].Direction)
	assert.InDelta(t, 0.98, pivots[2].UnitNAV, 1e-9)
	assert.Equal(t, PivotTrough, pivots[2].Direction)
	assert.InDelta(t, 1.01, pivots[3].UnitNAV, 1e-9)
	assert.Equal(t, PivotPeak, pivots[3].Direction)
}

func TestDetectPivotsDegenerateInputs(t *testing.T) {
	assert.Nil(t, DetectPivots(nil, 3))
	assert.Nil(t, DetectPivots(navSeries(1.0), 3))
	assert.Nil(t, DetectPivots(navSeries(1.0, 1.1), 0))
	assert.Nil(t, DetectPivots(navSeries(1.0, 1.1), -2))
}

func TestDetectPivotsFlatSeries(t *testing.T) {
	// Never crosses the threshold: only the endpoints survive, and only
	// when they differ.
	pivots := DetectPivots(navSeries(1.00, 1.01, 1.005, 1.01), 5)
	require.Len(t, pivots, 2)
	assert.InDelta(t, 1.00, pivots[0].UnitNAV, 1e-9)
	assert.InDelta(t, 1.01, pivots[1].UnitNAV, 1e-9)

	same := DetectPivots(navSeries(1.00, 1.02, 1.00), 5)
	require.Len(t, same, 1)
}

func TestDetectPivotsAlternation(t *testing.T) {
	series := navSeries(1.00, 1.04, 1.10, 1.02, 0.95, 1.00, 1.08, 1.03, 1.12, 1.05)

	for _, deviation := range []float64{1, 2, 3, 5, 8} {
		t.Run(fmt.Sprintf("deviation=%.0f", deviation), func(t *testing.T) {
			pivots := DetectPivots(series, deviation)
			require.NotEmpty(t, pivots)

			for i := 1; i < len(pivots); i++ {
				assert.NotEqual(t, pivots[i-1].Direction, pivots[i].Direction,
					"pivots %d and %d share a direction", i-1, i)
			}

			// Committed pivots differ by at least the threshold. The
			// terminal point only closes the open leg and is exempt.
			for i := 1; i < len(pivots)-1; i++ {
				change := math.Abs(pivots[i].UnitNAV-pivots[i-1].UnitNAV) / pivots[i-1].UnitNAV * 100
				assert.GreaterOrEqual(t, change, deviation,
					"pivots %d and %d too close", i-1, i)
			}
		})
	}
}
