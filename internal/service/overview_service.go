package service

import (
	"github.com/fundlens/fundlens/internal/model"
)

// FundOverview is the fully derived view of one position: replayed ledger
// state, valuation at the latest (possibly estimated) NAV, trend pivots, and
// the blended recommendation.
type FundOverview struct {
	ID     string   `json:"id"`
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`

	Shares         float64 `json:"shares"`
	AverageCost    float64 `json:"averageCost"`
	CostBasis      float64 `json:"costBasis"`
	RealizedProfit float64 `json:"realizedProfit"`

	LatestNAV       *model.NAVPoint `json:"latestNav,omitempty"`
	MarketValue     float64         `json:"marketValue"`
	HoldingProfit   float64         `json:"holdingProfit"`
	DailyProfit     float64         `json:"dailyProfit"`
	DailyProfitRate float64         `json:"dailyProfitRate"` // percent
	RecentProfit    float64         `json:"recentProfit"`    // since the last committed pivot

	Pivots         []model.PivotPoint `json:"pivots,omitempty"`
	TrendChangePct float64            `json:"trendChangePct"`
	Percentile     float64            `json:"percentile"`
	Score          float64            `json:"score"`
	TrendRegime    string             `json:"trendRegime"`
	Label          string             `json:"label"`

	PendingEvents int `json:"pendingEvents"`
}

// OverviewService derives the analytical view of the portfolio.
type OverviewService struct {
	positionService   *PositionService
	marketDataService *MarketDataService
	pivotDeviationPct float64
}

// NewOverviewService creates a new OverviewService.
func NewOverviewService(
	positionService *PositionService,
	marketDataService *MarketDataService,
	pivotDeviationPct float64,
) *OverviewService {
	return &OverviewService{
		positionService:   positionService,
		marketDataService: marketDataService,
		pivotDeviationPct: pivotDeviationPct,
	}
}

// GetOverview builds the derived record of every position.
func (s *OverviewService) GetOverview() ([]FundOverview, error) {
	positions, err := s.positionService.GetPositions()
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(positions))
	for i, p := range positions {
		codes[i] = p.Code
	}
	seriesByCode, err := s.marketDataService.GetSeriesForCodes(codes)
	if err != nil {
		return nil, err
	}

	overviews := make([]FundOverview, 0, len(positions))
	for _, position := range positions {
		overviews = append(overviews, s.buildOverview(position, seriesByCode[position.Code]))
	}
	return overviews, nil
}

func (s *OverviewService) buildOverview(position model.Position, series model.NAVSeries) FundOverview {
	state := ReplayLedger(position.Baseline(), position.TradeEvents)

	o := FundOverview{
		ID:             position.ID,
		Code:           position.Code,
		Name:           position.Name,
		Tags:           position.TagList(),
		Shares:         state.Shares,
		AverageCost:    state.AverageCost,
		CostBasis:      state.TotalCost,
		RealizedProfit: state.RealizedProfit,
	}
	for _, e := range position.TradeEvents {
		if !e.IsConfirmed() {
			o.PendingEvents++
		}
	}

	latest, ok := series.Latest()
	if !ok {
		// No NAV history yet: the fund scores neutral and carries no valuation.
		o.Percentile = 50
		rec := ScoreRecommendation(o.Percentile, 0, 0)
		o.Score = rec.Score
		o.TrendRegime = rec.TrendRegime
		o.Label = ScoreLabel(rec.Score)
		return o
	}

	o.LatestNAV = &latest
	o.MarketValue = round2(state.Shares * latest.UnitNAV)
	o.HoldingProfit = round2(o.MarketValue - state.TotalCost)
	o.DailyProfitRate = latest.DailyGrowthRate
	if prev, ok := series.Previous(); ok {
		o.DailyProfit = round2(state.Shares * (latest.UnitNAV - prev.UnitNAV))
	}

	o.Pivots = DetectPivots(series, s.pivotDeviationPct)
	if ref, ok := lastCommittedPivot(o.Pivots, latest.UnitNAV); ok {
		o.TrendChangePct = round2(percentChange(ref.UnitNAV, latest.UnitNAV))
		o.RecentProfit = round2(state.Shares * (latest.UnitNAV - ref.UnitNAV))
	}

	o.Percentile = NAVPercentile(series)
	rec := ScoreRecommendation(o.Percentile, o.TrendChangePct, latest.DailyGrowthRate)
	o.Score = rec.Score
	o.TrendRegime = rec.TrendRegime
	o.Label = ScoreLabel(rec.Score)

	return o
}

// lastCommittedPivot finds the most recent pivot that is not the terminal
// data point itself, the anchor the current trend leg is measured from.
func lastCommittedPivot(pivots []model.PivotPoint, latestNAV float64) (model.PivotPoint, bool) {
	for i := len(pivots) - 1; i >= 0; i-- {
		if pivots[i].UnitNAV != latestNAV {
			return pivots[i], true
		}
	}
	return model.PivotPoint{}, false
}
