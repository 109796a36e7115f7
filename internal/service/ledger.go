package service

import (
	"sort"

	"github.com/fundlens/fundlens/internal/model"
)

// dustThreshold is the share count below which a position is considered
// fully closed. Repeated sells with 2-decimal rounding can leave a residual
// fraction of a share; anything under this is snapped to zero together with
// its cost basis.
const dustThreshold = 1e-6

// LedgerState is the result of replaying trade events on top of a baseline:
// the share count, cost figures, and cumulative realized profit as of the
// last replayed event.
type LedgerState struct {
	Shares         float64
	TotalCost      float64
	AverageCost    float64
	RealizedProfit float64
}

// ReplayLedger reconstructs a position's state by applying the given trade
// events, oldest first, on top of the baseline. Only confirmed events affect
// the ledger; pending events have no settlement price yet and are skipped.
//
// Processing per kind:
//   - buy: shares increase by the settled share change, cost basis by the
//     invested amount.
//   - sell: cost basis is reduced proportionally (average-cost method) before
//     the share decrease is applied; realized profit accrues.
//   - dividend-cash: realized profit accrues; shares and cost are untouched.
//   - dividend-reinvest: shares increase with no cost change, folding the
//     reinvested value into the existing average.
//
// The function is total: it never fails, and malformed events are a
// data-contract violation handled at the import boundary, not here. Inputs
// are never mutated; replaying the same arguments twice yields identical
// output.
func ReplayLedger(baseline model.Baseline, events []model.TradeEvent) LedgerState {
	sorted := make([]model.TradeEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	shares := baseline.Shares
	totalCost := round2(baseline.Shares * baseline.AverageCost)
	realized := baseline.RealizedProfit

	for _, event := range sorted {
		if !event.IsConfirmed() {
			continue
		}
		leg := event.Confirmed

		switch event.Kind {
		case model.EventBuy:
			shares += leg.SharesChange
			totalCost = round2(totalCost + leg.Amount)
		case model.EventSell:
			// Remove cost proportionally before the share decrease so the
			// per-share cost reflects the pre-sale holding.
			if shares > 0 {
				costPerShare := round4(totalCost / shares)
				sold := -leg.SharesChange
				totalCost = round2(totalCost - round2(costPerShare*sold))
			}
			shares += leg.SharesChange
			realized = round2(realized + leg.RealizedProfitChange)
		case model.EventDividendCash:
			realized = round2(realized + leg.RealizedProfitChange)
		case model.EventDividendReinvest:
			shares += leg.SharesChange
		}

		if shares < dustThreshold {
			shares = 0
			totalCost = 0
		}
	}

	averageCost := 0.0
	if shares > 0 {
		averageCost = round4(totalCost / shares)
	}

	return LedgerState{
		Shares:         shares,
		TotalCost:      totalCost,
		AverageCost:    averageCost,
		RealizedProfit: realized,
	}
}

// eventsUpTo returns the events dated on or before the cutoff.
// Events are assumed sorted ascending, matching the repository ordering.
func eventsUpTo(events []model.TradeEvent, cutoff string) []model.TradeEvent {
	var out []model.TradeEvent
	for _, e := range events {
		if e.DateKey() <= cutoff {
			out = append(out, e)
		}
	}
	return out
}
