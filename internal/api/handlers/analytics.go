package handlers

import (
	"net/http"

	"github.com/fundlens/fundlens/internal/service"
)

// AnalyticsHandler serves the derived portfolio views: per-fund overview,
// the snapshot timeline, and tag rollups.
type AnalyticsHandler struct {
	overviewService *service.OverviewService
	snapshotService *service.SnapshotService
	tagService      *service.TagService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(
	overviewService *service.OverviewService,
	snapshotService *service.SnapshotService,
	tagService *service.TagService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		overviewService: overviewService,
		snapshotService: snapshotService,
		tagService:      tagService,
	}
}

// Overview handles GET requests for the derived per-fund records.
//
// Endpoint: GET /api/overview
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.overviewService.GetOverview()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overviews)
}

// Snapshots handles GET requests for the snapshot timeline, most recent
// first, with baseline and pending sentinel rows.
//
// Endpoint: GET /api/snapshots
func (h *AnalyticsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshotService.GetTimeline()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshots)
}

// Tags handles GET requests for the per-tag rollups plus the total row.
//
// Endpoint: GET /api/tags
func (h *AnalyticsHandler) Tags(w http.ResponseWriter, r *http.Request) {
	result, err := h.tagService.GetTagRollups()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
