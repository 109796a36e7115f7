package service

import (
	"fmt"

	"github.com/fundlens/fundlens/internal/api/request"
	"github.com/fundlens/fundlens/internal/apperrors"
	"github.com/fundlens/fundlens/internal/model"
	"github.com/fundlens/fundlens/internal/repository"
	"github.com/fundlens/fundlens/internal/validation"
)

// PositionService handles position and trade event business logic.
type PositionService struct {
	positionRepo *repository.PositionRepository
	eventRepo    *repository.TradeEventRepository
	navRepo      *repository.NAVRepository
}

// NewPositionService creates a new PositionService with the provided repository dependencies.
func NewPositionService(
	positionRepo *repository.PositionRepository,
	eventRepo *repository.TradeEventRepository,
	navRepo *repository.NAVRepository,
) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		eventRepo:    eventRepo,
		navRepo:      navRepo,
	}
}

// GetPositions retrieves all positions with their trade events attached,
// events ordered by date ascending.
func (s *PositionService) GetPositions() ([]model.Position, error) {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(positions))
	for i, p := range positions {
		ids[i] = p.ID
	}
	eventsByPosition, err := s.eventRepo.GetEventsByPositions(ids)
	if err != nil {
		return nil, err
	}
	for i := range positions {
		positions[i].TradeEvents = eventsByPosition[positions[i].ID]
	}

	return positions, nil
}

// GetPosition retrieves one position with its trade events attached.
func (s *PositionService) GetPosition(id string) (*model.Position, error) {
	position, err := s.positionRepo.GetPosition(id)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetEventsByPosition(id)
	if err != nil {
		return nil, err
	}
	position.TradeEvents = events
	return position, nil
}

// CreatePosition validates and creates a new position.
func (s *PositionService) CreatePosition(req request.CreatePositionRequest) (*model.Position, error) {
	if err := validation.ValidateCreatePosition(req); err != nil {
		return nil, err
	}
	return s.positionRepo.CreatePosition(model.Position{
		Code:           req.Code,
		Name:           req.Name,
		Shares:         req.Shares,
		AverageCost:    req.AverageCost,
		RealizedProfit: req.RealizedProfit,
		Tags:           req.Tags,
	})
}

// UpdatePosition validates and applies a partial update to a position.
func (s *PositionService) UpdatePosition(id string, req request.UpdatePositionRequest) (*model.Position, error) {
	if err := validation.ValidateUpdatePosition(req); err != nil {
		return nil, err
	}

	position, err := s.positionRepo.GetPosition(id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		position.Code = *req.Code
	}
	if req.Name != nil {
		position.Name = *req.Name
	}
	if req.Shares != nil {
		position.Shares = *req.Shares
	}
	if req.AverageCost != nil {
		position.AverageCost = *req.AverageCost
	}
	if req.RealizedProfit != nil {
		position.RealizedProfit = *req.RealizedProfit
	}
	if req.Tags != nil {
		position.Tags = *req.Tags
	}

	if err := s.positionRepo.UpdatePosition(*position); err != nil {
		return nil, err
	}
	return s.GetPosition(id)
}

// DeletePosition removes a position and its trade events.
func (s *PositionService) DeletePosition(id string) error {
	return s.positionRepo.DeletePosition(id)
}

// SubmitEvent records a trade event on a position's ledger, replacing any
// existing event on the same date. A request carrying a pending value
// produces a pending event that settles later; one carrying confirmed
// figures is applied as-is.
func (s *PositionService) SubmitEvent(positionID string, req request.SubmitTradeEventRequest) (*model.TradeEvent, error) {
	if err := validation.ValidateSubmitTradeEvent(req); err != nil {
		return nil, err
	}
	if _, err := s.positionRepo.GetPosition(positionID); err != nil {
		return nil, err
	}

	date, err := repository.ParseTime(req.Date)
	if err != nil {
		return nil, err
	}

	event := model.TradeEvent{
		PositionID: positionID,
		Date:       date,
		Kind:       req.Kind,
	}
	if req.Value != nil {
		event.Pending = &model.PendingLeg{Value: *req.Value}
	} else {
		leg := model.ConfirmedLeg{NAV: *req.NAV}
		if req.SharesChange != nil {
			leg.SharesChange = *req.SharesChange
		}
		if req.Amount != nil {
			leg.Amount = *req.Amount
		}
		if req.RealizedProfitChange != nil {
			leg.RealizedProfitChange = *req.RealizedProfitChange
		}
		event.Confirmed = &leg
	}

	return s.eventRepo.UpsertEvent(event)
}

// DeleteEvent removes the event on the given date from a position's ledger.
func (s *PositionService) DeleteEvent(positionID, dateStr string) error {
	date, err := repository.ParseTime(dateStr)
	if err != nil {
		return err
	}
	events, err := s.eventRepo.GetEventsByPosition(positionID)
	if err != nil {
		return err
	}
	for _, e := range events {
		if e.DateKey() == date.Format("2006-01-02") {
			return s.eventRepo.DeleteEvent(e.ID)
		}
	}
	return apperrors.ErrTradeEventNotFound
}

// SettlePendingEvents confirms every pending event whose exact date now has
// a cached NAV, oldest first so later settlements see earlier ones in the
// replayed average cost. Events whose date has no NAV yet are left pending.
// Returns the number of events settled.
func (s *PositionService) SettlePendingEvents() (int, error) {
	pending, err := s.eventRepo.GetPendingEvents()
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	settled := 0
	for _, event := range pending {
		position, err := s.positionRepo.GetPosition(event.PositionID)
		if err != nil {
			return settled, err
		}
		nav, err := s.navRepo.GetOnDate(position.Code, event.Date)
		if err == apperrors.ErrNAVNotFound {
			continue
		}
		if err != nil {
			return settled, err
		}

		// Average cost as of the event's date, from the events already
		// settled before it.
		events, err := s.eventRepo.GetEventsByPosition(event.PositionID)
		if err != nil {
			return settled, err
		}
		var before []model.TradeEvent
		for _, e := range events {
			if e.DateKey() < event.DateKey() {
				before = append(before, e)
			}
		}
		state := ReplayLedger(position.Baseline(), before)

		value := 0.0
		if event.Pending != nil {
			value = event.Pending.Value
		}
		leg := SettleEvent(event.Kind, value, nav.UnitNAV, state.AverageCost)
		if err := s.eventRepo.ConfirmEvent(event.ID, leg); err != nil {
			return settled, fmt.Errorf("failed to settle event %s: %w", event.ID, err)
		}
		settled++
	}

	return settled, nil
}

// PortfolioExport is the canonical import/export document: positions with
// their full event ledgers, no derived figures.
type PortfolioExport struct {
	Positions []model.Position `json:"positions"`
}

// Export returns the full portfolio as a canonical document.
func (s *PositionService) Export() (*PortfolioExport, error) {
	positions, err := s.GetPositions()
	if err != nil {
		return nil, err
	}
	return &PortfolioExport{Positions: positions}, nil
}

// Import loads a canonical document, creating or replacing positions by
// fund code. Existing positions with the same code are overwritten together
// with their events. The whole document is validated before anything is
// written: unknown event kinds or events with neither leg reject the import.
func (s *PositionService) Import(doc PortfolioExport) (int, error) {
	for _, position := range doc.Positions {
		if err := validation.ValidateImportPosition(position); err != nil {
			return 0, err
		}
	}

	imported := 0
	for _, position := range doc.Positions {
		existing, err := s.positionRepo.GetPositionByCode(position.Code)
		if err == nil {
			if delErr := s.positionRepo.DeletePosition(existing.ID); delErr != nil {
				return imported, delErr
			}
		} else if err != apperrors.ErrPositionNotFound {
			return imported, err
		}

		events := position.TradeEvents
		position.ID = ""
		position.TradeEvents = nil
		created, err := s.positionRepo.CreatePosition(position)
		if err != nil {
			return imported, err
		}
		for _, event := range events {
			event.ID = ""
			event.PositionID = created.ID
			if _, err := s.eventRepo.UpsertEvent(event); err != nil {
				return imported, err
			}
		}
		imported++
	}
	return imported, nil
}
