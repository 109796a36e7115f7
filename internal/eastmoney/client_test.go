package eastmoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundlens/fundlens/internal/apperrors"
)

func TestUnwrapJSONP(t *testing.T) {
	payload, err := unwrapJSONP(`jsonpgz({"fundcode":"000001"});`)
	if err != nil {
		t.Fatalf("unwrapJSONP failed: %v", err)
	}
	if payload != `{"fundcode":"000001"}` {
		t.Errorf("Unexpected payload: %s", payload)
	}

	if _, err := unwrapJSONP("not jsonp at all"); err == nil {
		t.Error("Expected error for non-jsonp body")
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.23", 1.23},
		{"-0.45", -0.45},
		{"2.5%", 2.5},
		{"", 0},
		{"-", 0},
		{"--", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := parsePercent(tc.in); got != tc.want {
			t.Errorf("parsePercent(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFetchHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fundCode") != "000001" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"Data":{"LSJZList":[
			{"FSRQ":"2024-03-04","DWJZ":"1.0520","JZZZL":"1.94"},
			{"FSRQ":"2024-03-01","DWJZ":"1.0320","JZZZL":"-0.58"}
		]},"ErrCode":0,"TotalCount":2}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.URL)

	series, err := client.FetchHistory(context.Background(), "000001", 30)
	if err != nil {
		t.Fatalf("FetchHistory failed: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(series))
	}
	// Oldest first regardless of feed order.
	if !series[0].Date.Before(series[1].Date) {
		t.Error("Expected series sorted ascending by date")
	}
	if series[0].UnitNAV != 1.0320 {
		t.Errorf("Expected first NAV 1.0320, got %v", series[0].UnitNAV)
	}
	if series[1].DailyGrowthRate != 1.94 {
		t.Errorf("Expected growth rate 1.94, got %v", series[1].DailyGrowthRate)
	}
}

func TestFetchHistoryUnknownFund(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Data":{"LSJZList":[]},"ErrCode":0,"TotalCount":0}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.URL)

	if _, err := client.FetchHistory(context.Background(), "999999", 30); err != apperrors.ErrFundNotFound {
		t.Errorf("Expected ErrFundNotFound, got %v", err)
	}
}

func TestFetchEstimate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`jsonpgz({"fundcode":"000001","name":"Test","jzrq":"2024-03-01","dwjz":"1.0320","gsz":"1.0455","gszzl":"1.31","gztime":"2024-03-04 14:30"});`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.URL)

	estimate, err := client.FetchEstimate(context.Background(), "000001")
	if err != nil {
		t.Fatalf("FetchEstimate failed: %v", err)
	}
	if estimate.Code != "000001" {
		t.Errorf("Unexpected code: %s", estimate.Code)
	}
	if estimate.EstimatedNAV != 1.0455 {
		t.Errorf("Expected estimated NAV 1.0455, got %v", estimate.EstimatedNAV)
	}
	if estimate.EstimatedChangePct != 1.31 {
		t.Errorf("Expected change 1.31, got %v", estimate.EstimatedChangePct)
	}
	if estimate.EstimationTime.IsZero() {
		t.Error("Expected parsed estimation time")
	}
}
