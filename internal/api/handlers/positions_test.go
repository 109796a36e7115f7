package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fundlens/fundlens/internal/api/handlers"
	"github.com/fundlens/fundlens/internal/model"
	"github.com/fundlens/fundlens/internal/testutil"
)

func TestPositionHandlerCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewPositionHandler(testutil.NewTestPositionService(t, db))

	body := bytes.NewBufferString(`{"code":"000001","name":"Test Fund","shares":1000,"averageCost":1.5,"tags":"tech"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/positions", body)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created model.Position
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.Code != "000001" || created.Shares != 1000 {
		t.Errorf("Unexpected created position: %+v", created)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/positions", nil)
	listW := httptest.NewRecorder()
	handler.List(listW, listReq)

	if listW.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", listW.Code)
	}
	var positions []model.Position
	if err := json.NewDecoder(listW.Body).Decode(&positions); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(positions) != 1 {
		t.Errorf("Expected 1 position, got %d", len(positions))
	}
}

func TestPositionHandlerCreateValidationError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewPositionHandler(testutil.NewTestPositionService(t, db))

	req := httptest.NewRequest(http.MethodPost, "/api/positions", bytes.NewBufferString(`{"name":"No Code"}`))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if _, ok := resp["fields"]; !ok {
		t.Errorf("Expected field errors in response, got %v", resp)
	}
}

func TestPositionHandlerGetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewPositionHandler(testutil.NewTestPositionService(t, db))

	req := testutil.NewRequestWithURLParams(
		http.MethodGet,
		"/api/positions/00000000-0000-0000-0000-000000000000",
		map[string]string{"id": "00000000-0000-0000-0000-000000000000"},
	)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestPositionHandlerSubmitEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewPositionHandler(testutil.NewTestPositionService(t, db))
	position := testutil.NewPosition().WithCode("000002").Build(t, db)

	body := bytes.NewBufferString(`{"date":"2024-03-01","kind":"buy","value":500}`)
	req := httptest.NewRequest(http.MethodPut, "/api/positions/"+position.ID+"/events", body)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", position.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler.SubmitEvent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var event model.TradeEvent
	if err := json.NewDecoder(w.Body).Decode(&event); err != nil {
		t.Fatalf("Failed to decode event: %v", err)
	}
	if event.Pending == nil || event.Pending.Value != 500 {
		t.Errorf("Expected pending value 500, got %+v", event)
	}
}
