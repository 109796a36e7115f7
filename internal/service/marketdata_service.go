package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fundlens/fundlens/internal/eastmoney"
	"github.com/fundlens/fundlens/internal/model"
	"github.com/fundlens/fundlens/internal/repository"
)

// maxConcurrentFetches bounds parallel provider requests during a refresh.
const maxConcurrentFetches = 4

// MarketDataService maintains the NAV cache and the in-memory intraday
// estimates. Confirmed NAV rows are persisted; estimates live only in
// memory and are re-fetched on each refresh.
type MarketDataService struct {
	positionRepo *repository.PositionRepository
	navRepo      *repository.NAVRepository
	settingRepo  *repository.SettingRepository
	client       eastmoney.Client
	historyDays  int
	logger       zerolog.Logger

	mu        sync.RWMutex
	estimates map[string]*model.RealtimeEstimate
}

// NewMarketDataService creates a new MarketDataService.
func NewMarketDataService(
	positionRepo *repository.PositionRepository,
	navRepo *repository.NAVRepository,
	settingRepo *repository.SettingRepository,
	client eastmoney.Client,
	historyDays int,
	logger zerolog.Logger,
) *MarketDataService {
	return &MarketDataService{
		positionRepo: positionRepo,
		navRepo:      navRepo,
		settingRepo:  settingRepo,
		client:       client,
		historyDays:  historyDays,
		logger:       logger,
		estimates:    map[string]*model.RealtimeEstimate{},
	}
}

// RefreshAll fetches NAV history and the intraday estimate for every
// tracked fund code, concurrently. History failures fail the refresh; a
// missing estimate is logged and skipped, the analytics fall back to the
// last confirmed NAV.
func (s *MarketDataService) RefreshAll(ctx context.Context) error {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, position := range positions {
		code := position.Code
		g.Go(func() error {
			if err := s.refreshCode(ctx, code); err != nil {
				s.logger.Error().Err(err).Str("code", code).Msg("nav refresh failed")
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.settingRepo.Set(repository.SettingLastRefreshAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record refresh time")
	}
	return nil
}

func (s *MarketDataService) refreshCode(ctx context.Context, code string) error {
	series, err := s.client.FetchHistory(ctx, code, s.fetchWindow(code))
	if err != nil {
		return err
	}
	if err := s.navRepo.UpsertPoints(code, series); err != nil {
		return err
	}
	s.logger.Debug().Str("code", code).Int("points", len(series)).Msg("nav history refreshed")

	estimate, err := s.client.FetchEstimate(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("estimate unavailable")
		return nil
	}
	s.mu.Lock()
	s.estimates[code] = estimate
	s.mu.Unlock()
	return nil
}

// fetchWindow returns how many days of history to request for a fund. A
// cold cache asks for the full configured window; a warm one only covers
// the gap since the last cached date, with slack for revised rows.
func (s *MarketDataService) fetchWindow(code string) int {
	latest, err := s.navRepo.LatestDate(code)
	if err != nil || latest.IsZero() {
		return s.historyDays
	}
	gap := int(time.Since(latest).Hours()/24) + 2
	if gap < s.historyDays {
		return gap
	}
	return s.historyDays
}

// Estimate returns the cached intraday estimate for a fund, if any.
func (s *MarketDataService) Estimate(code string) *model.RealtimeEstimate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.estimates[code]
}

// GetSeries returns a fund's cached NAV series with the intraday estimate
// appended as a synthetic trailing point when one is available.
func (s *MarketDataService) GetSeries(code string) (model.NAVSeries, error) {
	series, err := s.navRepo.GetSeries(code)
	if err != nil {
		return nil, err
	}
	return series.WithEstimate(s.Estimate(code)), nil
}

// GetSeriesForCodes returns augmented NAV series for several funds, keyed
// by fund code.
func (s *MarketDataService) GetSeriesForCodes(codes []string) (map[string]model.NAVSeries, error) {
	byCode, err := s.navRepo.GetSeriesForCodes(codes)
	if err != nil {
		return nil, err
	}
	for code, series := range byCode {
		byCode[code] = series.WithEstimate(s.Estimate(code))
	}
	return byCode, nil
}
