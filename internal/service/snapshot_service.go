package service

import "github.com/fundlens/fundlens/internal/model"

// SnapshotService assembles the inputs for the snapshot timeline.
type SnapshotService struct {
	positionService   *PositionService
	marketDataService *MarketDataService
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(positionService *PositionService, marketDataService *MarketDataService) *SnapshotService {
	return &SnapshotService{
		positionService:   positionService,
		marketDataService: marketDataService,
	}
}

// GetTimeline builds the snapshot timeline across all positions, most
// recent first, including the baseline and pending sentinel rows.
func (s *SnapshotService) GetTimeline() ([]model.Snapshot, error) {
	positions, err := s.positionService.GetPositions()
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(positions))
	for i, p := range positions {
		codes[i] = p.Code
	}
	seriesByCode, err := s.marketDataService.GetSeriesForCodes(codes)
	if err != nil {
		return nil, err
	}

	ledgers := make([]PositionLedger, 0, len(positions))
	for _, position := range positions {
		ledgers = append(ledgers, PositionLedger{
			Position: position,
			Series:   seriesByCode[position.Code],
		})
	}

	return BuildSnapshotTimeline(ledgers), nil
}
