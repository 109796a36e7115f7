package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundlens/fundlens/internal/api/handlers"
	"github.com/fundlens/fundlens/internal/repository"
	"github.com/fundlens/fundlens/internal/service"
	"github.com/fundlens/fundlens/internal/testutil"
)

func TestSystemHealth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSystemHandler(service.NewSystemService(db, repository.NewSettingRepository(db)))

	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp handlers.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Database != "connected" {
		t.Errorf("Unexpected health response: %+v", resp)
	}
}

func TestSystemHealthUnhealthy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSystemHandler(service.NewSystemService(db, repository.NewSettingRepository(db)))

	// Closing the connection makes the ping fail.
	db.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}
}
