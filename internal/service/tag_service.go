package service

import "github.com/fundlens/fundlens/internal/model"

// TagListResult is the tag endpoint payload: one rollup per distinct tag
// plus the portfolio-wide total row.
type TagListResult struct {
	Tags  []model.TagRollup `json:"tags"`
	Total model.TagRollup   `json:"total"`
}

// TagService rolls the derived per-fund figures up by tag.
type TagService struct {
	overviewService *OverviewService
}

// NewTagService creates a new TagService.
func NewTagService(overviewService *OverviewService) *TagService {
	return &TagService{overviewService: overviewService}
}

// GetTagRollups aggregates all positions into per-tag figures. Untagged
// funds contribute to the total row only.
func (s *TagService) GetTagRollups() (*TagListResult, error) {
	overviews, err := s.overviewService.GetOverview()
	if err != nil {
		return nil, err
	}

	funds := make([]FundFinancials, 0, len(overviews))
	for _, o := range overviews {
		f := FundFinancials{
			Code:            o.Code,
			Tags:            o.Tags,
			Held:            o.Shares > 0,
			CostBasis:       o.CostBasis,
			MarketValue:     o.MarketValue,
			HoldingProfit:   o.HoldingProfit,
			DailyProfit:     o.DailyProfit,
			DailyProfitRate: o.DailyProfitRate,
			RecentProfit:    o.RecentProfit,
		}
		// Yesterday's value backs the value-weighted daily rate.
		f.YesterdayMarketValue = o.MarketValue - o.DailyProfit
		funds = append(funds, f)
	}

	rollups, total := AggregateTags(funds)
	return &TagListResult{Tags: rollups, Total: total}, nil
}
