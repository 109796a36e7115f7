package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundlens/fundlens/internal/api/handlers"
	"github.com/fundlens/fundlens/internal/model"
	"github.com/fundlens/fundlens/internal/service"
	"github.com/fundlens/fundlens/internal/testutil"
)

func newAnalyticsFixture(t *testing.T) (*handlers.AnalyticsHandler, *testutil.MockProviderClient) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mock := testutil.NewMockProviderClient()

	position := testutil.NewPosition().WithCode("000020").WithBaseline(1000, 1.0, 0).WithTags("tech").Build(t, db)
	testutil.NewTradeEvent(position.ID).WithDate("2024-03-01").WithKind(model.EventBuy).Confirmed(1.00, 500, 500, 0).Build(t, db)
	testutil.InsertNAV(t, db, "000020", "2024-03-01", 1.00, 0)
	testutil.InsertNAV(t, db, "000020", "2024-03-04", 1.10, 10)

	handler := handlers.NewAnalyticsHandler(
		testutil.NewTestOverviewService(t, db, mock),
		testutil.NewTestSnapshotService(t, db, mock),
		testutil.NewTestTagService(t, db, mock),
	)
	return handler, mock
}

func TestAnalyticsSnapshots(t *testing.T) {
	handler, _ := newAnalyticsFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshots", nil)
	w := httptest.NewRecorder()

	handler.Snapshots(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snapshots []model.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snapshots); err != nil {
		t.Fatalf("Failed to decode snapshots: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("Expected trade date + baseline rows, got %d", len(snapshots))
	}
	if snapshots[0].Date != "2024-03-01" || snapshots[1].Date != model.SnapshotBaseline {
		t.Errorf("Unexpected snapshot order: %s, %s", snapshots[0].Date, snapshots[1].Date)
	}
}

func TestAnalyticsTags(t *testing.T) {
	handler, _ := newAnalyticsFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()

	handler.Tags(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var result service.TagListResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode tags: %v", err)
	}
	if len(result.Tags) != 1 || result.Tags[0].Tag != "tech" {
		t.Fatalf("Expected a single tech rollup, got %+v", result.Tags)
	}
	if result.Total.Tag != "total" {
		t.Errorf("Expected total row, got %+v", result.Total)
	}
	if result.Tags[0].TotalMarketValue != result.Total.TotalMarketValue {
		t.Errorf("Single-tag portfolio should match the total row")
	}
}

func TestAnalyticsOverview(t *testing.T) {
	handler, _ := newAnalyticsFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/overview", nil)
	w := httptest.NewRecorder()

	handler.Overview(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var overviews []service.FundOverview
	if err := json.NewDecoder(w.Body).Decode(&overviews); err != nil {
		t.Fatalf("Failed to decode overview: %v", err)
	}
	if len(overviews) != 1 {
		t.Fatalf("Expected 1 fund, got %d", len(overviews))
	}
	if overviews[0].MarketValue != 1650 {
		t.Errorf("Expected market value 1650, got %v", overviews[0].MarketValue)
	}
}
