package testutil

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fundlens/fundlens/internal/repository"
	"github.com/fundlens/fundlens/internal/service"
)

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)
	eventRepo := repository.NewTradeEventRepository(db)
	navRepo := repository.NewNAVRepository(db)

	return service.NewPositionService(
		positionRepo,
		eventRepo,
		navRepo,
	)
}

func NewTestMarketDataService(t *testing.T, db *sql.DB, client *MockProviderClient) *service.MarketDataService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)
	navRepo := repository.NewNAVRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	return service.NewMarketDataService(
		positionRepo,
		navRepo,
		settingRepo,
		client,
		365,
		zerolog.Nop(),
	)
}

func NewTestOverviewService(t *testing.T, db *sql.DB, client *MockProviderClient) *service.OverviewService {
	t.Helper()

	return service.NewOverviewService(
		NewTestPositionService(t, db),
		NewTestMarketDataService(t, db, client),
		3.0,
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB, client *MockProviderClient) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		NewTestPositionService(t, db),
		NewTestMarketDataService(t, db, client),
	)
}

func NewTestTagService(t *testing.T, db *sql.DB, client *MockProviderClient) *service.TagService {
	t.Helper()

	return service.NewTagService(NewTestOverviewService(t, db, client))
}
