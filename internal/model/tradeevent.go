package model

import "time"

// Trade event kinds. These are the only values accepted by the import
// boundary; anything else is rejected before it reaches the ledger.
const (
	EventBuy              = "buy"
	EventSell             = "sell"
	EventDividendCash     = "dividend-cash"
	EventDividendReinvest = "dividend-reinvest"
)

// ValidEventKind contains the allowed trade event kind values.
var ValidEventKind = map[string]bool{
	EventBuy: true, EventSell: true, EventDividendCash: true, EventDividendReinvest: true,
}

// TradeEvent is one dated entry in a position's ledger. It is a tagged
// union: exactly one of Pending or Confirmed is set. A pending event carries
// only the investor's intent; it becomes confirmed when a NAV for its exact
// date is known, never by guessing a price.
//
// A position holds at most one event per calendar date; a later submission
// for the same date replaces the earlier one.
type TradeEvent struct {
	ID         string        `json:"id"`
	PositionID string        `json:"positionId"`
	Date       time.Time     `json:"date"`
	Kind       string        `json:"kind"`
	Pending    *PendingLeg   `json:"pending,omitempty"`
	Confirmed  *ConfirmedLeg `json:"confirmed,omitempty"`
	CreatedAt  time.Time     `json:"createdAt,omitempty"`
}

// PendingLeg holds the intended size of a not-yet-settled event.
// Value is a currency amount for buy and cash dividends, a share count for
// sell, and a currency amount for reinvested dividends.
type PendingLeg struct {
	Value float64 `json:"value"`
}

// ConfirmedLeg holds the settled figures of an event priced at its date's NAV.
// SharesChange is signed (negative for sells), Amount is the signed currency
// flow (negative for proceeds), and RealizedProfitChange is non-zero only for
// sells and cash dividends.
type ConfirmedLeg struct {
	NAV                  float64 `json:"nav"`
	SharesChange         float64 `json:"sharesChange"`
	Amount               float64 `json:"amount"`
	RealizedProfitChange float64 `json:"realizedProfitChange"`
}

// IsConfirmed reports whether the event has settled figures.
func (e TradeEvent) IsConfirmed() bool {
	return e.Confirmed != nil
}

// DateKey returns the event date in YYYY-MM-DD form.
func (e TradeEvent) DateKey() string {
	return e.Date.Format("2006-01-02")
}
