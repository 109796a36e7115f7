package model

import "strings"

// Position represents one fund holding as stored in the database.
// Shares, AverageCost and RealizedProfit together form the baseline the
// ledger is replayed on top of; TradeEvents layer on top of that baseline.
type Position struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	Name           string       `json:"name"`
	Shares         float64      `json:"shares"`
	AverageCost    float64      `json:"averageCost"`
	RealizedProfit float64      `json:"realizedProfit"`
	Tags           string       `json:"tags"` // comma-separated labels
	TradeEvents    []TradeEvent `json:"tradeEvents"`
}

// Baseline is the pre-trade state of a position: what the investor held
// before any of the recorded trade events were applied.
type Baseline struct {
	Shares         float64
	AverageCost    float64
	RealizedProfit float64
}

// Baseline returns the position's baseline state.
func (p Position) Baseline() Baseline {
	return Baseline{
		Shares:         p.Shares,
		AverageCost:    p.AverageCost,
		RealizedProfit: p.RealizedProfit,
	}
}

// TagList splits the comma-separated tag string into trimmed, de-duplicated
// labels, preserving first-seen order. Empty segments are dropped.
func (p Position) TagList() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, tag := range strings.Split(p.Tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
