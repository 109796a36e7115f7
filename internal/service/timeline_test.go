package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlens/fundlens/internal/model"
)

func navPointAt(date string, nav float64) model.NAVPoint {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.NAVPoint{Date: d.UTC(), UnitNAV: nav}
}

func timelineFixture() []PositionLedger {
	position := model.Position{
		ID:     "p1",
		Code:   "000001",
		Shares: 1000, AverageCost: 1.0,
		TradeEvents: []model.TradeEvent{
			confirmedEvent("2024-03-01", model.EventBuy, model.ConfirmedLeg{NAV: 1.00, SharesChange: 500, Amount: 500}),
			pendingEvent("2024-03-05", model.EventSell, 100),
		},
	}
	series := model.NAVSeries{
		navPointAt("2024-03-01", 1.00),
		navPointAt("2024-03-02", 1.10),
	}
	return []PositionLedger{{Position: position, Series: series}}
}

func TestBuildSnapshotTimelineOrderAndSentinels(t *testing.T) {
	snapshots := BuildSnapshotTimeline(timelineFixture())

	require.Len(t, snapshots, 3)
	assert.Equal(t, model.SnapshotPending, snapshots[0].Date)
	assert.Equal(t, "2024-03-01", snapshots[1].Date)
	assert.Equal(t, model.SnapshotBaseline, snapshots[2].Date)
}

func TestBuildSnapshotTimelineTradeDateRow(t *testing.T) {
	snapshots := BuildSnapshotTimeline(timelineFixture())
	row := snapshots[1]

	// 1500 shares valued at the latest NAV of 1.10.
	assert.InDelta(t, 1650.0, row.CurrentMarketValue, 1e-9)
	assert.InDelta(t, 1500.0, row.TotalCostBasis, 1e-9)
	assert.InDelta(t, 150.0, row.TotalProfit, 1e-9)
	assert.InDelta(t, 1650.0, row.CumulativeValue, 1e-9)
	assert.InDelta(t, 150.0, row.DailyProfit, 1e-9)
	require.NotNil(t, row.DailyProfitRate)
	assert.InDelta(t, 10.0, *row.DailyProfitRate, 1e-9)

	// Same-day attribution of the buy.
	assert.InDelta(t, 500.0, row.NetAmountChange, 1e-9)
	assert.InDelta(t, 500.0, row.TotalBuyAmount, 1e-9)
	assert.Zero(t, row.TotalSellAmount)
	assert.InDelta(t, 50.0, row.FloatingProfit, 1e-9)
	assert.Zero(t, row.OpportunityProfit)
}

func TestBuildSnapshotTimelineBaselineRow(t *testing.T) {
	snapshots := BuildSnapshotTimeline(timelineFixture())
	baseline := snapshots[2]

	assert.InDelta(t, 1100.0, baseline.CurrentMarketValue, 1e-9)
	assert.InDelta(t, 1000.0, baseline.TotalCostBasis, 1e-9)
	assert.InDelta(t, 100.0, baseline.TotalProfit, 1e-9)
	assert.InDelta(t, 100.0, baseline.DailyProfit, 1e-9)
	// The baseline has no predecessor and carries no deltas.
	assert.Nil(t, baseline.MarketValueChange)
	assert.Nil(t, baseline.OperationProfit)
	assert.Zero(t, baseline.NetAmountChange)
}

func TestBuildSnapshotTimelinePendingRow(t *testing.T) {
	snapshots := BuildSnapshotTimeline(timelineFixture())
	pending := snapshots[0]

	// Selling 100 shares at the assumed NAV of 1.10 leaves 1400 shares,
	// removes 100 of cost, and realizes 10.
	assert.InDelta(t, 1540.0, pending.CurrentMarketValue, 1e-9)
	assert.InDelta(t, 1400.0, pending.TotalCostBasis, 1e-9)
	assert.InDelta(t, 150.0, pending.TotalProfit, 1e-9)
	assert.InDelta(t, 1550.0, pending.CumulativeValue, 1e-9)
	assert.InDelta(t, -110.0, pending.NetAmountChange, 1e-9)
	assert.InDelta(t, 110.0, pending.TotalSellAmount, 1e-9)
	assert.InDelta(t, 10.0, pending.RealizedProfit, 1e-9)
}

func TestBuildSnapshotTimelineDeltas(t *testing.T) {
	snapshots := BuildSnapshotTimeline(timelineFixture())
	pending, row := snapshots[0], snapshots[1]

	// Trade date against the baseline.
	require.NotNil(t, row.MarketValueChange)
	assert.InDelta(t, 550.0, *row.MarketValueChange, 1e-9)
	require.NotNil(t, row.OperationProfit)
	assert.InDelta(t, 50.0, *row.OperationProfit, 1e-9)
	require.NotNil(t, row.ProfitPerHundred)
	assert.InDelta(t, 10.0, *row.ProfitPerHundred, 1e-9)
	require.NotNil(t, row.ProfitCaused)
	assert.InDelta(t, 50.0, *row.ProfitCaused, 1e-9)
	require.NotNil(t, row.OperationEffect)
	assert.InDelta(t, 50.0, *row.OperationEffect, 1e-9)

	// Pending against the trade date.
	require.NotNil(t, pending.MarketValueChange)
	assert.InDelta(t, -110.0, *pending.MarketValueChange, 1e-9)
	require.NotNil(t, pending.OperationProfit)
	assert.InDelta(t, 0.0, *pending.OperationProfit, 1e-9)
	require.NotNil(t, pending.ProfitCaused)
	assert.InDelta(t, -10.0, *pending.ProfitCaused, 1e-9)
	require.NotNil(t, pending.OperationEffect)
	assert.InDelta(t, round2(-10.0/150.0*100), *pending.OperationEffect, 1e-9)
}

func TestBuildSnapshotTimelineOperationEffectDefault(t *testing.T) {
	// Predecessor with ~0 daily profit: the effect defaults to 100.
	position := model.Position{
		ID: "p1", Code: "000001",
		TradeEvents: []model.TradeEvent{
			confirmedEvent("2024-03-01", model.EventBuy, model.ConfirmedLeg{NAV: 1.00, SharesChange: 100, Amount: 100}),
		},
	}
	series := model.NAVSeries{
		navPointAt("2024-03-01", 1.00),
		navPointAt("2024-03-02", 1.10),
	}

	snapshots := BuildSnapshotTimeline([]PositionLedger{{Position: position, Series: series}})

	require.Len(t, snapshots, 2)
	row := snapshots[0]
	require.NotNil(t, row.OperationEffect)
	assert.InDelta(t, 100.0, *row.OperationEffect, 1e-9)
}

func TestBuildSnapshotTimelineNoEvents(t *testing.T) {
	position := model.Position{ID: "p1", Code: "000001", Shares: 10, AverageCost: 2}
	series := model.NAVSeries{navPointAt("2024-03-01", 2.5)}

	snapshots := BuildSnapshotTimeline([]PositionLedger{{Position: position, Series: series}})

	// Only the baseline row.
	require.Len(t, snapshots, 1)
	assert.Equal(t, model.SnapshotBaseline, snapshots[0].Date)
	assert.InDelta(t, 25.0, snapshots[0].CurrentMarketValue, 1e-9)
	// A single NAV point has no previous day.
	assert.Zero(t, snapshots[0].DailyProfit)
	assert.Nil(t, snapshots[0].DailyProfitRate)
}
