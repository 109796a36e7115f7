package service

import (
	"sort"

	"github.com/fundlens/fundlens/internal/model"
)

// nearZero is the cutoff under which a currency denominator is treated as
// zero. Currency figures are rounded to two decimals, so anything below a
// cent carries no information.
const nearZero = 0.01

// PositionLedger pairs a position with the NAV series used to value it.
// The series may carry a trailing estimated point for the current session.
type PositionLedger struct {
	Position model.Position
	Series   model.NAVSeries
}

// BuildSnapshotTimeline reconstructs the portfolio's state once per distinct
// confirmed trade date, most recent first, with a baseline sentinel appended
// and a pending sentinel prepended when any position still has an unsettled
// event.
//
// Every snapshot values the shares held as of its date at the latest NAV,
// answering "what would I hold now with exactly this much trading done"; the
// baseline row is the same question with no trading at all. Each date is a
// full replay from the baseline rather than an incremental update of the
// previous date.
func BuildSnapshotTimeline(positions []PositionLedger) []model.Snapshot {
	dates := confirmedDates(positions)

	snapshots := make([]model.Snapshot, 0, len(dates)+2)
	for _, date := range dates {
		snapshots = append(snapshots, snapshotAsOf(date, positions))
	}

	// Most recent first.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	if hasPending(positions) {
		snapshots = append([]model.Snapshot{pendingSnapshot(positions)}, snapshots...)
	}
	snapshots = append(snapshots, baselineSnapshot(positions))

	// Delta metrics against the chronologically previous snapshot; only the
	// baseline row (last in the list) has no predecessor.
	for i := 0; i < len(snapshots)-1; i++ {
		applyDeltas(&snapshots[i], &snapshots[i+1])
	}

	return snapshots
}

// confirmedDates collects the distinct confirmed event dates across all
// positions, ascending.
func confirmedDates(positions []PositionLedger) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, pl := range positions {
		for _, e := range pl.Position.TradeEvents {
			if !e.IsConfirmed() || seen[e.DateKey()] {
				continue
			}
			seen[e.DateKey()] = true
			dates = append(dates, e.DateKey())
		}
	}
	sort.Strings(dates)
	return dates
}

func hasPending(positions []PositionLedger) bool {
	for _, pl := range positions {
		for _, e := range pl.Position.TradeEvents {
			if !e.IsConfirmed() {
				return true
			}
		}
	}
	return false
}

// snapshotAsOf replays every position's ledger truncated at the given date
// and aggregates portfolio-wide totals plus that day's trading attribution.
func snapshotAsOf(date string, positions []PositionLedger) model.Snapshot {
	snap := model.Snapshot{Date: date}

	var marketValue, costBasis, realized, dailyProfit, yesterdayValue float64
	for _, pl := range positions {
		state := ReplayLedger(pl.Position.Baseline(), eventsUpTo(pl.Position.TradeEvents, date))
		costBasis = round2(costBasis + state.TotalCost)
		realized = round2(realized + state.RealizedProfit)

		latest, ok := pl.Series.Latest()
		if !ok {
			continue
		}
		marketValue = round2(marketValue + round2(state.Shares*latest.UnitNAV))
		if prev, ok := pl.Series.Previous(); ok {
			dailyProfit = round2(dailyProfit + round2(state.Shares*(latest.UnitNAV-prev.UnitNAV)))
			yesterdayValue += state.Shares * prev.UnitNAV
		}

		applyDayAttribution(&snap, pl, date, latest.UnitNAV)
	}

	fillTotals(&snap, marketValue, costBasis, realized, dailyProfit, yesterdayValue)
	return snap
}

// applyDayAttribution accumulates the cash flows and trading profits of the
// events dated exactly on the snapshot date.
//
// For buys the "floating profit" is the unrealized gain since purchase,
// valued at the latest NAV. For sells the "opportunity profit" is the value
// foregone by not holding the sold shares to the latest NAV.
func applyDayAttribution(snap *model.Snapshot, pl PositionLedger, date string, latestNAV float64) {
	for _, e := range pl.Position.TradeEvents {
		if !e.IsConfirmed() || e.DateKey() != date {
			continue
		}
		leg := e.Confirmed
		switch e.Kind {
		case model.EventBuy:
			snap.NetAmountChange = round2(snap.NetAmountChange + leg.Amount)
			snap.TotalBuyAmount = round2(snap.TotalBuyAmount + leg.Amount)
			snap.FloatingProfit = round2(snap.FloatingProfit + round2((latestNAV-leg.NAV)*leg.SharesChange))
		case model.EventSell:
			snap.NetAmountChange = round2(snap.NetAmountChange + leg.Amount)
			snap.TotalSellAmount = round2(snap.TotalSellAmount - leg.Amount)
			snap.OpportunityProfit = round2(snap.OpportunityProfit + round2((latestNAV-leg.NAV)*-leg.SharesChange))
			snap.RealizedProfit = round2(snap.RealizedProfit + leg.RealizedProfitChange)
		case model.EventDividendCash:
			snap.RealizedProfit = round2(snap.RealizedProfit + leg.RealizedProfitChange)
		}
	}
}

// baselineSnapshot values the raw baseline positions at the latest NAV,
// ignoring all trade events: the "what if I had never traded" reference.
func baselineSnapshot(positions []PositionLedger) model.Snapshot {
	snap := model.Snapshot{Date: model.SnapshotBaseline}

	var marketValue, costBasis, realized, dailyProfit, yesterdayValue float64
	for _, pl := range positions {
		b := pl.Position.Baseline()
		costBasis = round2(costBasis + round2(b.Shares*b.AverageCost))
		realized = round2(realized + b.RealizedProfit)

		latest, ok := pl.Series.Latest()
		if !ok {
			continue
		}
		marketValue = round2(marketValue + round2(b.Shares*latest.UnitNAV))
		if prev, ok := pl.Series.Previous(); ok {
			dailyProfit = round2(dailyProfit + round2(b.Shares*(latest.UnitNAV-prev.UnitNAV)))
			yesterdayValue += b.Shares * prev.UnitNAV
		}
	}

	fillTotals(&snap, marketValue, costBasis, realized, dailyProfit, yesterdayValue)
	return snap
}

// pendingSnapshot extends the fully-replayed ledger with each pending
// event's intended value, priced at the latest (possibly estimated) NAV as
// the assumed settlement price. Nothing here is persisted; once real NAVs
// arrive the pending events settle and the row disappears.
func pendingSnapshot(positions []PositionLedger) model.Snapshot {
	snap := model.Snapshot{Date: model.SnapshotPending}

	var marketValue, costBasis, realized, dailyProfit, yesterdayValue float64
	for _, pl := range positions {
		state := ReplayLedger(pl.Position.Baseline(), pl.Position.TradeEvents)

		latest, ok := pl.Series.Latest()
		if !ok {
			continue
		}

		for _, e := range pl.Position.TradeEvents {
			if e.IsConfirmed() {
				continue
			}
			assumed := assumeSettlement(e, latest.UnitNAV, state.AverageCost)
			switch e.Kind {
			case model.EventBuy:
				state.Shares += assumed.SharesChange
				state.TotalCost = round2(state.TotalCost + assumed.Amount)
				snap.NetAmountChange = round2(snap.NetAmountChange + assumed.Amount)
				snap.TotalBuyAmount = round2(snap.TotalBuyAmount + assumed.Amount)
			case model.EventSell:
				if state.Shares > 0 {
					costPerShare := round4(state.TotalCost / state.Shares)
					state.TotalCost = round2(state.TotalCost - round2(costPerShare*-assumed.SharesChange))
				}
				state.Shares += assumed.SharesChange
				state.RealizedProfit = round2(state.RealizedProfit + assumed.RealizedProfitChange)
				snap.NetAmountChange = round2(snap.NetAmountChange + assumed.Amount)
				snap.TotalSellAmount = round2(snap.TotalSellAmount - assumed.Amount)
				snap.RealizedProfit = round2(snap.RealizedProfit + assumed.RealizedProfitChange)
			case model.EventDividendCash:
				state.RealizedProfit = round2(state.RealizedProfit + assumed.RealizedProfitChange)
				snap.RealizedProfit = round2(snap.RealizedProfit + assumed.RealizedProfitChange)
			case model.EventDividendReinvest:
				state.Shares += assumed.SharesChange
			}
		}

		costBasis = round2(costBasis + state.TotalCost)
		realized = round2(realized + state.RealizedProfit)
		marketValue = round2(marketValue + round2(state.Shares*latest.UnitNAV))
		if prev, ok := pl.Series.Previous(); ok {
			dailyProfit = round2(dailyProfit + round2(state.Shares*(latest.UnitNAV-prev.UnitNAV)))
			yesterdayValue += state.Shares * prev.UnitNAV
		}
	}

	fillTotals(&snap, marketValue, costBasis, realized, dailyProfit, yesterdayValue)
	return snap
}

// assumeSettlement derives the settled figures a pending event would have at
// the assumed NAV. The same arithmetic is used by the real settlement sweep,
// there with the actual NAV of the event's date.
func assumeSettlement(e model.TradeEvent, nav, averageCost float64) model.ConfirmedLeg {
	value := 0.0
	if e.Pending != nil {
		value = e.Pending.Value
	}
	return SettleEvent(e.Kind, value, nav, averageCost)
}

// SettleEvent converts a pending event's intended value into confirmed
// figures at the given NAV. For buys and reinvested dividends the value is a
// currency amount converted into shares; for sells it is a share count
// converted into proceeds, with realized profit measured against the average
// cost at that point in the ledger; for cash dividends it is the cash
// received.
func SettleEvent(kind string, value, nav, averageCost float64) model.ConfirmedLeg {
	switch kind {
	case model.EventBuy:
		shares := 0.0
		if nav > 0 {
			shares = round2(value / nav)
		}
		return model.ConfirmedLeg{NAV: nav, SharesChange: shares, Amount: round2(value)}
	case model.EventSell:
		proceeds := round2(value * nav)
		return model.ConfirmedLeg{
			NAV:                  nav,
			SharesChange:         -value,
			Amount:               -proceeds,
			RealizedProfitChange: round2((nav - averageCost) * value),
		}
	case model.EventDividendCash:
		return model.ConfirmedLeg{NAV: nav, RealizedProfitChange: round2(value)}
	case model.EventDividendReinvest:
		shares := 0.0
		if nav > 0 {
			shares = round2(value / nav)
		}
		return model.ConfirmedLeg{NAV: nav, SharesChange: shares}
	}
	return model.ConfirmedLeg{NAV: nav}
}

// fillTotals sets the aggregate value fields shared by all snapshot kinds.
func fillTotals(snap *model.Snapshot, marketValue, costBasis, realized, dailyProfit, yesterdayValue float64) {
	snap.CurrentMarketValue = marketValue
	snap.TotalCostBasis = costBasis
	snap.CumulativeValue = round2(marketValue + realized)
	snap.TotalProfit = round2(marketValue - costBasis + realized)
	snap.DailyProfit = dailyProfit
	if yesterdayValue > nearZero {
		rate := round2(dailyProfit / yesterdayValue * 100)
		snap.DailyProfitRate = &rate
	}
}

// applyDeltas computes the trade-attribution deltas of cur against prev, its
// chronological predecessor. Market value change not explained by cash flow
// is the operation profit; the change in daily P&L versus the predecessor's
// trajectory is the profit caused by the trade.
func applyDeltas(cur, prev *model.Snapshot) {
	mvChange := round2(cur.CurrentMarketValue - prev.CurrentMarketValue)
	cur.MarketValueChange = &mvChange

	opProfit := round2(mvChange - cur.NetAmountChange)
	cur.OperationProfit = &opProfit

	actionBase := cur.TotalBuyAmount + cur.TotalSellAmount
	if actionBase > nearZero {
		perHundred := round2(opProfit / actionBase * 100)
		cur.ProfitPerHundred = &perHundred
	}

	caused := round2(cur.DailyProfit - prev.DailyProfit)
	cur.ProfitCaused = &caused

	effect := 100.0
	if abs(prev.DailyProfit) > nearZero {
		effect = round2(caused / abs(prev.DailyProfit) * 100)
	}
	cur.OperationEffect = &effect
}
