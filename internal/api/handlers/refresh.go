package handlers

import (
	"net/http"

	"github.com/fundlens/fundlens/internal/service"
)

// RefreshHandler triggers an on-demand market data refresh.
type RefreshHandler struct {
	marketDataService *service.MarketDataService
	positionService   *service.PositionService
}

// NewRefreshHandler creates a new RefreshHandler
func NewRefreshHandler(marketDataService *service.MarketDataService, positionService *service.PositionService) *RefreshHandler {
	return &RefreshHandler{
		marketDataService: marketDataService,
		positionService:   positionService,
	}
}

// RefreshResponse reports the outcome of a refresh run.
type RefreshResponse struct {
	Status  string `json:"status"`
	Settled int    `json:"settled"`
}

// Refresh handles POST requests to refresh all NAV caches and settle
// whatever pending events the new data unlocks.
//
// Endpoint: POST /api/refresh
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.marketDataService.RefreshAll(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}

	settled, err := h.positionService.SettlePendingEvents()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RefreshResponse{Status: "ok", Settled: settled})
}
