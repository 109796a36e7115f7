package model

// Sentinel dates used by the snapshot timeline in place of a trade date.
const (
	SnapshotBaseline = "baseline" // raw baseline positions, no trades applied
	SnapshotPending  = "pending"  // intended trades priced at the estimated NAV
)

// Snapshot is the portfolio-wide state reconstructed as of one trade date
// (or a baseline/pending sentinel). Market value is always taken at the
// latest NAV, so a snapshot answers "what would I hold now with exactly this
// much trading done", not "what was it worth back then".
//
// Ratio fields that would divide by a near-zero denominator are nil and
// omitted from JSON rather than carrying NaN or infinity.
type Snapshot struct {
	Date               string  `json:"date"`
	TotalCostBasis     float64 `json:"totalCostBasis"`
	CurrentMarketValue float64 `json:"currentMarketValue"`
	CumulativeValue    float64 `json:"cumulativeValue"` // market value + realized profit
	TotalProfit        float64 `json:"totalProfit"`
	DailyProfit        float64 `json:"dailyProfit"`
	DailyProfitRate    *float64 `json:"dailyProfitRate,omitempty"` // percent

	// Same-day trading attribution. Zero-valued on the baseline snapshot.
	NetAmountChange   float64 `json:"netAmountChange"`
	TotalBuyAmount    float64 `json:"totalBuyAmount"`
	TotalSellAmount   float64 `json:"totalSellAmount"`
	FloatingProfit    float64 `json:"floatingProfit"`    // unrealized gain on that day's buys, at latest NAV
	OpportunityProfit float64 `json:"opportunityProfit"` // value foregone by that day's sells, at latest NAV
	RealizedProfit    float64 `json:"realizedProfit"`    // locked in by that day's sells and cash dividends

	// Deltas against the chronologically previous snapshot.
	MarketValueChange *float64 `json:"marketValueChange,omitempty"`
	OperationProfit   *float64 `json:"operationProfit,omitempty"`
	ProfitPerHundred  *float64 `json:"profitPerHundred,omitempty"` // operation profit per 100 units of turnover
	ProfitCaused      *float64 `json:"profitCaused,omitempty"`
	OperationEffect   *float64 `json:"operationEffect,omitempty"` // percent
}
