package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundlens/fundlens/internal/api/request"
	"github.com/fundlens/fundlens/internal/service"
)

// PositionHandler handles position and trade event HTTP requests.
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// List handles GET requests for all positions with their trade events.
//
// Endpoint: GET /api/positions
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionService.GetPositions()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, positions)
}

// Get handles GET requests for a single position.
//
// Endpoint: GET /api/positions/{id}
func (h *PositionHandler) Get(w http.ResponseWriter, r *http.Request) {
	position, err := h.positionService.GetPosition(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, position)
}

// Create handles POST requests to create a position.
//
// Endpoint: POST /api/positions
func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	position, err := h.positionService.CreatePosition(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, position)
}

// Update handles PUT requests to partially update a position.
//
// Endpoint: PUT /api/positions/{id}
func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	position, err := h.positionService.UpdatePosition(chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, position)
}

// Delete handles DELETE requests to remove a position and its events.
//
// Endpoint: DELETE /api/positions/{id}
func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.positionService.DeletePosition(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// SubmitEvent handles PUT requests to record a trade event on a position.
// An event on the same date replaces the existing one.
//
// Endpoint: PUT /api/positions/{id}/events
func (h *PositionHandler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitTradeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	event, err := h.positionService.SubmitEvent(chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE requests to remove the event on a given date.
//
// Endpoint: DELETE /api/positions/{id}/events/{date}
func (h *PositionHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := h.positionService.DeleteEvent(chi.URLParam(r, "id"), chi.URLParam(r, "date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Export handles GET requests for the canonical portfolio document.
//
// Endpoint: GET /api/positions/export
func (h *PositionHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.positionService.Export()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// Import handles POST requests loading a canonical portfolio document.
// Positions are matched by fund code; matches are replaced.
//
// Endpoint: POST /api/positions/import
func (h *PositionHandler) Import(w http.ResponseWriter, r *http.Request) {
	var doc service.PortfolioExport
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	imported, err := h.positionService.Import(doc)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
