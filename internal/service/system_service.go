package service

import (
	"database/sql"
	"fmt"

	"github.com/fundlens/fundlens/internal/database"
	"github.com/fundlens/fundlens/internal/model"
	"github.com/fundlens/fundlens/internal/repository"
	"github.com/fundlens/fundlens/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db          *sql.DB
	settingRepo *repository.SettingRepository
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, settingRepo *repository.SettingRepository) *SystemService {
	return &SystemService{
		db:          db,
		settingRepo: settingRepo,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// LastRefresh returns when market data was last refreshed, as an RFC3339
// string, or the empty string when no refresh has completed yet.
func (s *SystemService) LastRefresh() string {
	value, err := s.settingRepo.Get(repository.SettingLastRefreshAt)
	if err != nil {
		return ""
	}
	return value
}

// CheckVersion returns the application version and the database schema version.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	schema, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to read schema version: %w", err)
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  fmt.Sprintf("%d", schema),
	}, nil
}
