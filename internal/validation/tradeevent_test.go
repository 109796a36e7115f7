package validation

import (
	"errors"
	"testing"

	"github.com/fundlens/fundlens/internal/api/request"
	"github.com/fundlens/fundlens/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateSubmitTradeEvent(t *testing.T) {
	t.Run("accepts pending event", func(t *testing.T) {
		err := ValidateSubmitTradeEvent(request.SubmitTradeEventRequest{
			Date:  "2024-03-01",
			Kind:  model.EventBuy,
			Value: floatPtr(500),
		})
		if err != nil {
			t.Errorf("Expected valid request, got %v", err)
		}
	})

	t.Run("accepts confirmed event", func(t *testing.T) {
		err := ValidateSubmitTradeEvent(request.SubmitTradeEventRequest{
			Date:         "2024-03-01",
			Kind:         model.EventSell,
			NAV:          floatPtr(1.7),
			SharesChange: floatPtr(-200),
			Amount:       floatPtr(-340),
		})
		if err != nil {
			t.Errorf("Expected valid request, got %v", err)
		}
	})

	cases := []struct {
		name  string
		req   request.SubmitTradeEventRequest
		field string
	}{
		{"missing date", request.SubmitTradeEventRequest{Kind: model.EventBuy, Value: floatPtr(1)}, "date"},
		{"malformed date", request.SubmitTradeEventRequest{Date: "01-03-2024", Kind: model.EventBuy, Value: floatPtr(1)}, "date"},
		{"missing kind", request.SubmitTradeEventRequest{Date: "2024-03-01", Value: floatPtr(1)}, "kind"},
		{"unknown kind", request.SubmitTradeEventRequest{Date: "2024-03-01", Kind: "transfer", Value: floatPtr(1)}, "kind"},
		{"no leg", request.SubmitTradeEventRequest{Date: "2024-03-01", Kind: model.EventBuy}, "value"},
		{"both legs", request.SubmitTradeEventRequest{Date: "2024-03-01", Kind: model.EventBuy, Value: floatPtr(1), NAV: floatPtr(1)}, "value"},
		{"non-positive value", request.SubmitTradeEventRequest{Date: "2024-03-01", Kind: model.EventBuy, Value: floatPtr(0)}, "value"},
		{"non-positive nav", request.SubmitTradeEventRequest{Date: "2024-03-01", Kind: model.EventBuy, NAV: floatPtr(-1)}, "nav"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubmitTradeEvent(tc.req)
			var validationErr *Error
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if _, ok := validationErr.Fields[tc.field]; !ok {
				t.Errorf("Expected %s field error, got %v", tc.field, validationErr.Fields)
			}
		})
	}
}

func TestValidateCreatePosition(t *testing.T) {
	err := ValidateCreatePosition(request.CreatePositionRequest{Code: "000001", Name: "Fund"})
	if err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}

	err = ValidateCreatePosition(request.CreatePositionRequest{Shares: -1})
	var validationErr *Error
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	for _, field := range []string{"code", "name", "shares"} {
		if _, ok := validationErr.Fields[field]; !ok {
			t.Errorf("Expected %s field error, got %v", field, validationErr.Fields)
		}
	}
}
