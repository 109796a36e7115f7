package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fundlens/fundlens/internal/apperrors"
	"github.com/fundlens/fundlens/internal/model"
)

// PositionRepository provides data access methods for the position table.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// GetPositions retrieves all positions ordered by fund code.
// Trade events are not loaded; use a TradeEventRepository for those.
func (r *PositionRepository) GetPositions() ([]model.Position, error) {
	rows, err := r.db.Query(`
		SELECT id, code, name, shares, average_cost, realized_profit, tags
		FROM position
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		var p model.Position
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Shares, &p.AverageCost, &p.RealizedProfit, &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan position table results: %w", err)
		}
		positions = append(positions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPosition retrieves a single position by ID.
func (r *PositionRepository) GetPosition(id string) (*model.Position, error) {
	var p model.Position
	err := r.db.QueryRow(`
		SELECT id, code, name, shares, average_cost, realized_profit, tags
		FROM position
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Code, &p.Name, &p.Shares, &p.AverageCost, &p.RealizedProfit, &p.Tags)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	return &p, nil
}

// GetPositionByCode retrieves a single position by fund code.
func (r *PositionRepository) GetPositionByCode(code string) (*model.Position, error) {
	var p model.Position
	err := r.db.QueryRow(`
		SELECT id, code, name, shares, average_cost, realized_profit, tags
		FROM position
		WHERE code = ?
	`, code).Scan(&p.ID, &p.Code, &p.Name, &p.Shares, &p.AverageCost, &p.RealizedProfit, &p.Tags)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	return &p, nil
}

// CreatePosition inserts a new position and returns it with its generated ID.
func (r *PositionRepository) CreatePosition(p model.Position) (*model.Position, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.db.Exec(`
		INSERT INTO position (id, code, name, shares, average_cost, realized_profit, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Code, p.Name, p.Shares, p.AverageCost, p.RealizedProfit, p.Tags)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, apperrors.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("failed to insert position: %w", err)
	}
	return &p, nil
}

// UpdatePosition updates a position's mutable fields.
func (r *PositionRepository) UpdatePosition(p model.Position) error {
	result, err := r.db.Exec(`
		UPDATE position
		SET code = ?, name = ?, shares = ?, average_cost = ?, realized_profit = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`, p.Code, p.Name, p.Shares, p.AverageCost, p.RealizedProfit, p.Tags, time.Now().UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}

// DeletePosition removes a position; its trade events cascade.
func (r *PositionRepository) DeletePosition(id string) error {
	result, err := r.db.Exec(`DELETE FROM position WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}
