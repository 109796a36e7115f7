package service

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fundlens/fundlens/internal/model"
)

// Trend regimes reported alongside the momentum sub-score.
const (
	RegimeOversold   = "oversold"
	RegimeBottoming  = "bottoming"
	RegimeClimbing   = "climbing"
	RegimeAdvancing  = "advancing"
	RegimeOverheated = "overheated"
)

// Recommendation is the blended actionability score for one fund.
type Recommendation struct {
	Score       float64 `json:"score"` // 0..100
	TrendRegime string  `json:"trendRegime"`
}

// Score labels bucketed at 75/60/40/25. The thresholds are a consumer
// convention, not part of the scoring contract.
const (
	LabelStrongBuy  = "strong-buy"
	LabelBuy        = "buy"
	LabelHold       = "hold"
	LabelSell       = "sell"
	LabelStrongSell = "strong-sell"
)

// ScoreRecommendation blends three signals into a 0..100 actionability
// score: where today's NAV sits in its history (cheap is bullish), the move
// since the last committed pivot (momentum), and today's direction.
//
// Weights are 0.5 percentile, 0.3 trend, 0.2 daily.
func ScoreRecommendation(percentile, trendChangePct, dailyChangePct float64) Recommendation {
	base := 100 - percentile
	trend, regime := trendSubScore(trendChangePct)
	daily := dailySubScore(trendChangePct, dailyChangePct)

	score := clampScore(0.5*base + 0.3*trend + 0.2*daily)
	return Recommendation{Score: round2(score), TrendRegime: regime}
}

// trendSubScore maps the pivot-to-latest percent change onto a 0..100
// momentum score across five regimes. A deepening decline below -3% scores
// increasingly oversold; a shallow decline is bottoming and stays neutral;
// moderate rises ramp up; a 4.5-9% rise is a full-strength advance; beyond
// 9% the score fades as the move looks overheated.
func trendSubScore(changePct float64) (float64, string) {
	switch {
	case changePct < -3:
		return clampScore(50 + (-3-changePct)*10), RegimeOversold
	case changePct < 0:
		return 50, RegimeBottoming
	case changePct < 4.5:
		return clampScore(50 + changePct*(30/4.5)), RegimeClimbing
	case changePct <= 9:
		return 100, RegimeAdvancing
	default:
		return clampScore(100 - (changePct-9)*10), RegimeOverheated
	}
}

// dailySubScore scores today's move relative to the prevailing trend.
// Within a downtrend a further daily drop makes the fund look cheaper, so it
// scores higher; within an up- or flat trend a daily rise confirms momentum.
func dailySubScore(trendChangePct, dailyChangePct float64) float64 {
	if trendChangePct < 0 {
		return clampScore(50 - dailyChangePct*5)
	}
	return clampScore(50 + dailyChangePct*5)
}

// ScoreLabel buckets a score into the five consumer-facing action labels.
func ScoreLabel(score float64) string {
	switch {
	case score >= 75:
		return LabelStrongBuy
	case score >= 60:
		return LabelBuy
	case score >= 40:
		return LabelHold
	case score >= 25:
		return LabelSell
	default:
		return LabelStrongSell
	}
}

// NAVPercentile returns the percentile rank (0..100) of the latest NAV
// within the series, via the empirical CDF. An empty series ranks at 50 so a
// fund without history scores neutral rather than extreme.
func NAVPercentile(series model.NAVSeries) float64 {
	if len(series) == 0 {
		return 50
	}
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.UnitNAV
	}
	latest := values[len(values)-1]
	sort.Float64s(values)
	return stat.CDF(latest, stat.Empirical, values, nil) * 100
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
