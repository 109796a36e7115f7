package service

import (
	"sort"

	"github.com/fundlens/fundlens/internal/model"
)

// FundFinancials is the per-fund input to the tag aggregator: the derived
// figures of one position plus the labels it carries.
type FundFinancials struct {
	Code                 string
	Tags                 []string
	Held                 bool // shares > 0
	CostBasis            float64
	MarketValue          float64
	YesterdayMarketValue float64
	HoldingProfit        float64
	DailyProfit          float64
	DailyProfitRate      float64 // percent
	RecentProfit         float64 // since the last committed pivot
}

// AggregateTags rolls the per-fund financials up into one TagRollup per
// distinct label, plus a portfolio-wide total row of the same shape.
//
// A fund contributes fully to every tag it carries, so per-tag figures
// intentionally double count multi-tagged funds; the rollups are advertised
// per-tag, not as a partition of the portfolio.
//
// Rate policy: the per-tag daily rate is value-weighted
// (sum(dailyProfit)/sum(yesterdayMarketValue)); when that denominator is
// zero (watched funds with no shares) it falls back to the simple mean of
// the per-fund rates. Efficiency ratios compare the tag's share of a
// portfolio-wide profit figure to its share of portfolio-wide market value.
func AggregateTags(funds []FundFinancials) ([]model.TagRollup, model.TagRollup) {
	total := rollupOf("total", funds)

	byTag := make(map[string][]FundFinancials)
	var order []string
	for _, fund := range funds {
		for _, tag := range fund.Tags {
			if _, seen := byTag[tag]; !seen {
				order = append(order, tag)
			}
			byTag[tag] = append(byTag[tag], fund)
		}
	}
	sort.Strings(order)

	rollups := make([]model.TagRollup, 0, len(order))
	for _, tag := range order {
		r := rollupOf(tag, byTag[tag])
		r.HoldingEfficiency = efficiency(r.HoldingProfit, total.HoldingProfit, r.TotalMarketValue, total.TotalMarketValue)
		r.DailyEfficiency = efficiency(r.DailyProfit, total.DailyProfit, r.TotalMarketValue, total.TotalMarketValue)
		r.RecentEfficiency = efficiency(r.RecentProfit, total.RecentProfit, r.TotalMarketValue, total.TotalMarketValue)
		rollups = append(rollups, r)
	}

	return rollups, total
}

// rollupOf sums one group of funds into a TagRollup with rate fields set.
func rollupOf(tag string, funds []FundFinancials) model.TagRollup {
	r := model.TagRollup{Tag: tag, FundCount: len(funds)}

	var yesterdayValue, rateSum float64
	for _, fund := range funds {
		if fund.Held {
			r.HoldingCount++
		}
		r.TotalCostBasis = round2(r.TotalCostBasis + fund.CostBasis)
		r.TotalMarketValue = round2(r.TotalMarketValue + fund.MarketValue)
		r.HoldingProfit = round2(r.HoldingProfit + fund.HoldingProfit)
		r.DailyProfit = round2(r.DailyProfit + fund.DailyProfit)
		r.RecentProfit = round2(r.RecentProfit + fund.RecentProfit)
		yesterdayValue += fund.YesterdayMarketValue
		rateSum += fund.DailyProfitRate
	}

	if r.TotalCostBasis != 0 {
		rate := round2(r.HoldingProfit / r.TotalCostBasis * 100)
		r.HoldingProfitRate = &rate
	}
	if yesterdayValue != 0 {
		rate := round2(r.DailyProfit / yesterdayValue * 100)
		r.DailyProfitRate = &rate
	} else if len(funds) > 0 {
		rate := round2(rateSum / float64(len(funds)))
		r.DailyProfitRate = &rate
	}

	return r
}

// efficiency computes (tagProfit/|totalProfit|) / (tagValue/totalValue).
// Any degenerate denominator yields nil so no NaN or infinity escapes.
func efficiency(tagProfit, totalProfit, tagValue, totalValue float64) *float64 {
	if totalProfit == 0 || totalValue == 0 || tagValue == 0 {
		return nil
	}
	profitShare := tagProfit / abs(totalProfit)
	valueShare := tagValue / totalValue
	e := round2(profitShare / valueShare)
	return &e
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
