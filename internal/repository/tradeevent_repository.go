package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fundlens/fundlens/internal/apperrors"
	"github.com/fundlens/fundlens/internal/model"
)

// TradeEventRepository provides data access methods for the trade_event table.
//
// Storage is flat: a row with a NULL nav is a pending event carrying only
// pending_value; a row with a nav is confirmed and carries the settled
// figures. The mapping to the model's Pending/Confirmed legs happens here.
type TradeEventRepository struct {
	db *sql.DB
}

// NewTradeEventRepository creates a new TradeEventRepository with the provided database connection.
func NewTradeEventRepository(db *sql.DB) *TradeEventRepository {
	return &TradeEventRepository{db: db}
}

const eventColumns = `id, position_id, date, kind, pending_value, nav, shares_change, amount, realized_profit_change, created_at`

func scanEvent(rows interface{ Scan(...any) error }) (model.TradeEvent, error) {
	var e model.TradeEvent
	var date, createdAt string
	var pendingValue, nav, sharesChange, amount, realizedChange sql.NullFloat64

	err := rows.Scan(&e.ID, &e.PositionID, &date, &e.Kind, &pendingValue, &nav, &sharesChange, &amount, &realizedChange, &createdAt)
	if err != nil {
		return model.TradeEvent{}, err
	}

	if e.Date, err = ParseTime(date); err != nil {
		return model.TradeEvent{}, err
	}
	if e.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.TradeEvent{}, err
	}

	if nav.Valid {
		e.Confirmed = &model.ConfirmedLeg{
			NAV:                  nav.Float64,
			SharesChange:         sharesChange.Float64,
			Amount:               amount.Float64,
			RealizedProfitChange: realizedChange.Float64,
		}
	} else {
		e.Pending = &model.PendingLeg{Value: pendingValue.Float64}
	}
	return e, nil
}

// GetEventsByPosition retrieves a position's trade events ordered by date ascending.
func (r *TradeEventRepository) GetEventsByPosition(positionID string) ([]model.TradeEvent, error) {
	rows, err := r.db.Query(`
		SELECT `+eventColumns+`
		FROM trade_event
		WHERE position_id = ?
		ORDER BY date ASC
	`, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_event table: %w", err)
	}
	defer rows.Close()

	events := []model.TradeEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_event table results: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_event table: %w", err)
	}
	return events, nil
}

// GetEventsByPositions retrieves the trade events of several positions in one
// query, keyed by position ID, each list ordered by date ascending.
func (r *TradeEventRepository) GetEventsByPositions(positionIDs []string) (map[string][]model.TradeEvent, error) {
	byPosition := map[string][]model.TradeEvent{}
	if len(positionIDs) == 0 {
		return byPosition, nil
	}

	placeholders := make([]string, len(positionIDs))
	args := make([]any, len(positionIDs))
	for i, id := range positionIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT ` + eventColumns + `
		FROM trade_event
		WHERE position_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY position_id, date ASC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_event table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_event table results: %w", err)
		}
		byPosition[e.PositionID] = append(byPosition[e.PositionID], e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_event table: %w", err)
	}
	return byPosition, nil
}

// UpsertEvent inserts a trade event, replacing any existing event of the
// same position and date. One event per position per calendar date.
func (r *TradeEventRepository) UpsertEvent(e model.TradeEvent) (*model.TradeEvent, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	var pendingValue, nav, sharesChange, amount, realizedChange any
	if e.Pending != nil {
		pendingValue = e.Pending.Value
	}
	if e.Confirmed != nil {
		nav = e.Confirmed.NAV
		sharesChange = e.Confirmed.SharesChange
		amount = e.Confirmed.Amount
		realizedChange = e.Confirmed.RealizedProfitChange
	}

	_, err := r.db.Exec(`
		INSERT INTO trade_event (id, position_id, date, kind, pending_value, nav, shares_change, amount, realized_profit_change)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (position_id, date) DO UPDATE SET
			kind = excluded.kind,
			pending_value = excluded.pending_value,
			nav = excluded.nav,
			shares_change = excluded.shares_change,
			amount = excluded.amount,
			realized_profit_change = excluded.realized_profit_change
	`, e.ID, e.PositionID, e.DateKey(), e.Kind, pendingValue, nav, sharesChange, amount, realizedChange)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert trade event: %w", err)
	}
	return &e, nil
}

// ConfirmEvent writes the settled figures onto a pending event.
func (r *TradeEventRepository) ConfirmEvent(id string, leg model.ConfirmedLeg) error {
	result, err := r.db.Exec(`
		UPDATE trade_event
		SET pending_value = NULL, nav = ?, shares_change = ?, amount = ?, realized_profit_change = ?
		WHERE id = ?
	`, leg.NAV, leg.SharesChange, leg.Amount, leg.RealizedProfitChange, id)
	if err != nil {
		return fmt.Errorf("failed to confirm trade event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check confirm result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeEventNotFound
	}
	return nil
}

// GetPendingEvents retrieves all pending events across positions, oldest first.
func (r *TradeEventRepository) GetPendingEvents() ([]model.TradeEvent, error) {
	rows, err := r.db.Query(`
		SELECT ` + eventColumns + `
		FROM trade_event
		WHERE nav IS NULL
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_event table: %w", err)
	}
	defer rows.Close()

	events := []model.TradeEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_event table results: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_event table: %w", err)
	}
	return events, nil
}

// DeleteEvent removes a trade event by ID.
func (r *TradeEventRepository) DeleteEvent(id string) error {
	result, err := r.db.Exec(`DELETE FROM trade_event WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeEventNotFound
	}
	return nil
}
