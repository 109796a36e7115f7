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

// NAVRepository provides data access methods for the nav_price cache table.
// The cache holds confirmed per-day NAVs fetched from the external provider;
// intraday estimates are never written here.
type NAVRepository struct {
	db *sql.DB
}

// NewNAVRepository creates a new NAVRepository with the provided database connection.
func NewNAVRepository(db *sql.DB) *NAVRepository {
	return &NAVRepository{db: db}
}

// GetSeries retrieves a fund's cached NAV history ordered by date ascending.
func (r *NAVRepository) GetSeries(code string) (model.NAVSeries, error) {
	rows, err := r.db.Query(`
		SELECT date, unit_nav, daily_growth_rate
		FROM nav_price
		WHERE code = ?
		ORDER BY date ASC
	`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_price table: %w", err)
	}
	defer rows.Close()

	series := model.NAVSeries{}
	for rows.Next() {
		var p model.NAVPoint
		var date string
		if err := rows.Scan(&date, &p.UnitNAV, &p.DailyGrowthRate); err != nil {
			return nil, fmt.Errorf("failed to scan nav_price table results: %w", err)
		}
		if p.Date, err = ParseTime(date); err != nil {
			return nil, fmt.Errorf("failed to parse nav date: %w", err)
		}
		series = append(series, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav_price table: %w", err)
	}
	return series, nil
}

// GetSeriesForCodes retrieves cached NAV history for several funds in one
// query, keyed by fund code, each series ordered by date ascending.
func (r *NAVRepository) GetSeriesForCodes(codes []string) (map[string]model.NAVSeries, error) {
	byCode := map[string]model.NAVSeries{}
	if len(codes) == 0 {
		return byCode, nil
	}

	placeholders := make([]string, len(codes))
	args := make([]any, len(codes))
	for i, code := range codes {
		placeholders[i] = "?"
		args[i] = code
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT code, date, unit_nav, daily_growth_rate
		FROM nav_price
		WHERE code IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY code, date ASC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_price table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code, date string
		var p model.NAVPoint
		if err := rows.Scan(&code, &date, &p.UnitNAV, &p.DailyGrowthRate); err != nil {
			return nil, fmt.Errorf("failed to scan nav_price table results: %w", err)
		}
		if p.Date, err = ParseTime(date); err != nil {
			return nil, fmt.Errorf("failed to parse nav date: %w", err)
		}
		byCode[code] = append(byCode[code], p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav_price table: %w", err)
	}
	return byCode, nil
}

// GetOnDate retrieves the NAV of a fund for an exact calendar date.
func (r *NAVRepository) GetOnDate(code string, date time.Time) (*model.NAVPoint, error) {
	var p model.NAVPoint
	var dateStr string
	err := r.db.QueryRow(`
		SELECT date, unit_nav, daily_growth_rate
		FROM nav_price
		WHERE code = ? AND date = ?
	`, code, date.Format("2006-01-02")).Scan(&dateStr, &p.UnitNAV, &p.DailyGrowthRate)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNAVNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_price table: %w", err)
	}
	if p.Date, err = ParseTime(dateStr); err != nil {
		return nil, fmt.Errorf("failed to parse nav date: %w", err)
	}
	return &p, nil
}

// UpsertPoints writes a batch of NAV points for a fund, replacing any
// existing rows for the same dates.
func (r *NAVRepository) UpsertPoints(code string, points []model.NAVPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin nav upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(`
		INSERT INTO nav_price (id, code, date, unit_nav, daily_growth_rate)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (code, date) DO UPDATE SET
			unit_nav = excluded.unit_nav,
			daily_growth_rate = excluded.daily_growth_rate
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare nav upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if p.Estimated {
			continue
		}
		if _, err := stmt.Exec(uuid.New().String(), code, p.Date.Format("2006-01-02"), p.UnitNAV, p.DailyGrowthRate); err != nil {
			return fmt.Errorf("failed to upsert nav point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit nav upsert: %w", err)
	}
	return nil
}

// LatestDate returns the most recent cached NAV date for a fund, or the zero
// time when no rows exist.
func (r *NAVRepository) LatestDate(code string) (time.Time, error) {
	var date sql.NullString
	err := r.db.QueryRow(`SELECT MAX(date) FROM nav_price WHERE code = ?`, code).Scan(&date)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query nav_price table: %w", err)
	}
	if !date.Valid {
		return time.Time{}, nil
	}
	return ParseTime(date.String)
}
