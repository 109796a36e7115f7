package model

// TagRollup aggregates per-fund financials across all positions carrying one
// label. A fund contributes to every tag it holds, so rollups across tags do
// not sum to the portfolio total when funds carry multiple tags; totals are
// advertised per-tag, not portfolio-exclusive.
type TagRollup struct {
	Tag          string `json:"tag"`
	FundCount    int    `json:"fundCount"`
	HoldingCount int    `json:"holdingCount"` // funds with shares > 0

	TotalCostBasis   float64 `json:"totalCostBasis"`
	TotalMarketValue float64 `json:"totalMarketValue"`
	HoldingProfit    float64 `json:"holdingProfit"`
	DailyProfit      float64 `json:"dailyProfit"`
	RecentProfit     float64 `json:"recentProfit"` // since the last pivot

	HoldingProfitRate *float64 `json:"holdingProfitRate,omitempty"` // percent, profit / cost basis
	DailyProfitRate   *float64 `json:"dailyProfitRate,omitempty"`   // percent, value-weighted with mean fallback

	// Efficiency ratios compare the tag's share of a portfolio-wide profit
	// figure to its share of portfolio-wide market value. 1.0 means the tag
	// contributes profit proportionally to its size.
	HoldingEfficiency *float64 `json:"holdingEfficiency,omitempty"`
	DailyEfficiency   *float64 `json:"dailyEfficiency,omitempty"`
	RecentEfficiency  *float64 `json:"recentEfficiency,omitempty"`
}
