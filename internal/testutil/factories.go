package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fundlens/fundlens/internal/model"
)

// MakeID returns a fresh UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// Simple creation with defaults
//	position := testutil.NewPosition().Build(t, db)
//
//	// Customized position
//	position := testutil.NewPosition().
//	    WithCode("000001").
//	    WithBaseline(1000, 1.25, 0).
//	    WithTags("tech,growth").
//	    Build(t, db)
type PositionBuilder struct {
	ID             string
	Code           string
	Name           string
	Shares         float64
	AverageCost    float64
	RealizedProfit float64
	Tags           string
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition() *PositionBuilder {
	id := MakeID()
	return &PositionBuilder{
		ID:   id,
		Code: "0" + id[:5],
		Name: "Test Fund",
	}
}

// WithID sets a custom ID.
func (b *PositionBuilder) WithID(id string) *PositionBuilder {
	b.ID = id
	return b
}

// WithCode sets a custom fund code.
func (b *PositionBuilder) WithCode(code string) *PositionBuilder {
	b.Code = code
	return b
}

// WithName sets a custom name.
func (b *PositionBuilder) WithName(name string) *PositionBuilder {
	b.Name = name
	return b
}

// WithBaseline sets the pre-trade baseline figures.
func (b *PositionBuilder) WithBaseline(shares, averageCost, realizedProfit float64) *PositionBuilder {
	b.Shares = shares
	b.AverageCost = averageCost
	b.RealizedProfit = realizedProfit
	return b
}

// WithTags sets the comma-separated tag string.
func (b *PositionBuilder) WithTags(tags string) *PositionBuilder {
	b.Tags = tags
	return b
}

// Build creates the position in the database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	query := `
		INSERT INTO position (id, code, name, shares, average_cost, realized_profit, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Code, b.Name, b.Shares, b.AverageCost, b.RealizedProfit, b.Tags)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return model.Position{
		ID:             b.ID,
		Code:           b.Code,
		Name:           b.Name,
		Shares:         b.Shares,
		AverageCost:    b.AverageCost,
		RealizedProfit: b.RealizedProfit,
		Tags:           b.Tags,
	}
}

// TradeEventBuilder provides a fluent interface for creating test trade events.
//
// Example usage:
//
//	// Confirmed buy
//	testutil.NewTradeEvent(position.ID).
//	    WithDate("2024-03-01").
//	    Confirmed(1.20, 500, 600, 0).
//	    Build(t, db)
//
//	// Pending sell of 200 shares
//	testutil.NewTradeEvent(position.ID).
//	    WithDate("2024-03-05").
//	    WithKind(model.EventSell).
//	    Pending(200).
//	    Build(t, db)
type TradeEventBuilder struct {
	ID         string
	PositionID string
	Date       string
	Kind       string
	Pending_   *model.PendingLeg
	Confirmed_ *model.ConfirmedLeg
}

// NewTradeEvent creates a TradeEventBuilder for the given position.
func NewTradeEvent(positionID string) *TradeEventBuilder {
	return &TradeEventBuilder{
		ID:         MakeID(),
		PositionID: positionID,
		Date:       "2024-01-02",
		Kind:       model.EventBuy,
	}
}

// WithDate sets the event date (YYYY-MM-DD).
func (b *TradeEventBuilder) WithDate(date string) *TradeEventBuilder {
	b.Date = date
	return b
}

// WithKind sets the event kind.
func (b *TradeEventBuilder) WithKind(kind string) *TradeEventBuilder {
	b.Kind = kind
	return b
}

// Pending marks the event pending with the given intended value.
func (b *TradeEventBuilder) Pending(value float64) *TradeEventBuilder {
	b.Pending_ = &model.PendingLeg{Value: value}
	b.Confirmed_ = nil
	return b
}

// Confirmed marks the event confirmed with settled figures.
func (b *TradeEventBuilder) Confirmed(nav, sharesChange, amount, realizedProfitChange float64) *TradeEventBuilder {
	b.Confirmed_ = &model.ConfirmedLeg{
		NAV:                  nav,
		SharesChange:         sharesChange,
		Amount:               amount,
		RealizedProfitChange: realizedProfitChange,
	}
	b.Pending_ = nil
	return b
}

// Build creates the trade event in the database and returns it.
func (b *TradeEventBuilder) Build(t *testing.T, db *sql.DB) model.TradeEvent {
	t.Helper()

	var pendingValue, nav, sharesChange, amount, realizedChange any
	if b.Pending_ != nil {
		pendingValue = b.Pending_.Value
	}
	if b.Confirmed_ != nil {
		nav = b.Confirmed_.NAV
		sharesChange = b.Confirmed_.SharesChange
		amount = b.Confirmed_.Amount
		realizedChange = b.Confirmed_.RealizedProfitChange
	}

	query := `
		INSERT INTO trade_event (id, position_id, date, kind, pending_value, nav, shares_change, amount, realized_profit_change)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.PositionID, b.Date, b.Kind, pendingValue, nav, sharesChange, amount, realizedChange)
	if err != nil {
		t.Fatalf("Failed to create test trade event: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test event date: %v", err)
	}

	return model.TradeEvent{
		ID:         b.ID,
		PositionID: b.PositionID,
		Date:       date,
		Kind:       b.Kind,
		Pending:    b.Pending_,
		Confirmed:  b.Confirmed_,
	}
}

// InsertNAV writes one NAV row for a fund code.
func InsertNAV(t *testing.T, db *sql.DB, code, date string, unitNAV, growthRate float64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO nav_price (id, code, date, unit_nav, daily_growth_rate)
		VALUES (?, ?, ?, ?, ?)
	`, MakeID(), code, date, unitNAV, growthRate)
	if err != nil {
		t.Fatalf("Failed to create test nav price: %v", err)
	}
}

// NAVPointAt builds a NAVPoint for in-memory series construction.
func NAVPointAt(date string, unitNAV, growthRate float64) model.NAVPoint {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.NAVPoint{Date: d.UTC(), UnitNAV: unitNAV, DailyGrowthRate: growthRate}
}
