package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTagsBasic(t *testing.T) {
	funds := []FundFinancials{
		{Code: "000001", Tags: []string{"A"}, Held: true, MarketValue: 1000, CostBasis: 900, HoldingProfit: 100},
		{Code: "000002", Tags: []string{"A"}, Held: true, MarketValue: 500, CostBasis: 600, HoldingProfit: -100},
	}

	rollups, total := AggregateTags(funds)

	require.Len(t, rollups, 1)
	a := rollups[0]
	assert.Equal(t, "A", a.Tag)
	assert.Equal(t, 2, a.FundCount)
	assert.Equal(t, 2, a.HoldingCount)
	assert.InDelta(t, 1500.0, a.TotalMarketValue, 1e-9)
	assert.InDelta(t, 1500.0, a.TotalCostBasis, 1e-9)
	assert.InDelta(t, 0.0, a.HoldingProfit, 1e-9)
	require.NotNil(t, a.HoldingProfitRate)
	assert.InDelta(t, 0.0, *a.HoldingProfitRate, 1e-9)

	assert.Equal(t, "total", total.Tag)
	assert.InDelta(t, 1500.0, total.TotalMarketValue, 1e-9)
}

func TestAggregateTagsEfficiencyNormalization(t *testing.T) {
	// One tag owning the entire portfolio has efficiency exactly 1.
	funds := []FundFinancials{
		{Code: "000001", Tags: []string{"only"}, Held: true, MarketValue: 1200, CostBasis: 1000, HoldingProfit: 200,
			DailyProfit: 12, RecentProfit: 30},
	}

	rollups, _ := AggregateTags(funds)

	require.Len(t, rollups, 1)
	r := rollups[0]
	require.NotNil(t, r.HoldingEfficiency)
	assert.InDelta(t, 1.0, *r.HoldingEfficiency, 1e-9)
	require.NotNil(t, r.DailyEfficiency)
	assert.InDelta(t, 1.0, *r.DailyEfficiency, 1e-9)
	require.NotNil(t, r.RecentEfficiency)
	assert.InDelta(t, 1.0, *r.RecentEfficiency, 1e-9)
}

func TestAggregateTagsMultiTagDoubleCounts(t *testing.T) {
	funds := []FundFinancials{
		{Code: "000001", Tags: []string{"A", "B"}, Held: true, MarketValue: 100, CostBasis: 100},
		{Code: "000002", Tags: []string{"B"}, Held: true, MarketValue: 50, CostBasis: 50},
	}

	rollups, total := AggregateTags(funds)

	require.Len(t, rollups, 2)
	byTag := map[string]float64{}
	for _, r := range rollups {
		byTag[r.Tag] = r.TotalMarketValue
	}
	assert.InDelta(t, 100.0, byTag["A"], 1e-9)
	assert.InDelta(t, 150.0, byTag["B"], 1e-9)
	// Per-tag values exceed the portfolio total; rollups are per-tag views,
	// not a partition.
	assert.InDelta(t, 150.0, total.TotalMarketValue, 1e-9)
}

func TestAggregateTagsDailyRateFallback(t *testing.T) {
	// Watched funds with no shares: the value-weighted denominator is zero,
	// so the rate falls back to the mean of per-fund rates.
	funds := []FundFinancials{
		{Code: "000001", Tags: []string{"watch"}, DailyProfitRate: 2},
		{Code: "000002", Tags: []string{"watch"}, DailyProfitRate: -1},
	}

	rollups, _ := AggregateTags(funds)

	require.Len(t, rollups, 1)
	require.NotNil(t, rollups[0].DailyProfitRate)
	assert.InDelta(t, 0.5, *rollups[0].DailyProfitRate, 1e-9)
}

func TestAggregateTagsDegenerateDenominators(t *testing.T) {
	funds := []FundFinancials{
		{Code: "000001", Tags: []string{"zero"}},
	}

	rollups, _ := AggregateTags(funds)

	require.Len(t, rollups, 1)
	r := rollups[0]
	assert.Nil(t, r.HoldingProfitRate)
	assert.Nil(t, r.HoldingEfficiency)
	assert.Nil(t, r.DailyEfficiency)
	assert.Nil(t, r.RecentEfficiency)
}

func TestAggregateTagsEmpty(t *testing.T) {
	rollups, total := AggregateTags(nil)
	assert.Empty(t, rollups)
	assert.Equal(t, "total", total.Tag)
	assert.Zero(t, total.FundCount)
}
