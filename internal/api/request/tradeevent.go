package request

// SubmitTradeEventRequest records an event on a position's ledger. Exactly
// one of the pending value or the confirmed figures must be present: a
// pending event carries only the intended value, a confirmed event carries
// the settled nav/sharesChange/amount figures.
type SubmitTradeEventRequest struct {
	Date string `json:"date"`
	Kind string `json:"kind"`

	Value *float64 `json:"value,omitempty"` // pending: intended size

	NAV                  *float64 `json:"nav,omitempty"` // confirmed figures
	SharesChange         *float64 `json:"sharesChange,omitempty"`
	Amount               *float64 `json:"amount,omitempty"`
	RealizedProfitChange *float64 `json:"realizedProfitChange,omitempty"`
}
