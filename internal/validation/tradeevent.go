package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/fundlens/fundlens/internal/api/request"
	"github.com/fundlens/fundlens/internal/model"
)

// ValidateSubmitTradeEvent validates a trade event submission.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - kind: Must be one of: buy, sell, dividend-cash, dividend-reinvest
//
// Exactly one leg must be present: either value (pending) or nav (confirmed).
// A pending value must be positive; a confirmed event must carry its nav.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateSubmitTradeEvent(req request.SubmitTradeEventRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !model.ValidEventKind[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	switch {
	case req.Value == nil && req.NAV == nil:
		errors["value"] = "either value (pending) or nav (confirmed) is required"
	case req.Value != nil && req.NAV != nil:
		errors["value"] = "value and nav are mutually exclusive"
	case req.Value != nil && *req.Value <= 0:
		errors["value"] = "value must be positive"
	case req.NAV != nil && *req.NAV <= 0:
		errors["nav"] = "nav must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateImportPosition validates one position of a canonical import
// document. Unknown event kinds and events carrying neither a pending value
// nor a confirmed leg reject the whole import before anything is written.
func ValidateImportPosition(position model.Position) error {
	errors := make(map[string]string)

	if strings.TrimSpace(position.Code) == "" {
		errors["code"] = "code is required"
	}

	for _, event := range position.TradeEvents {
		field := fmt.Sprintf("%s/%s", position.Code, event.DateKey())
		if !model.ValidEventKind[event.Kind] {
			errors[field] = fmt.Sprintf("invalid kind: %s", event.Kind)
			continue
		}
		if event.Pending == nil && event.Confirmed == nil {
			errors[field] = "event carries neither a pending value nor confirmed figures"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
