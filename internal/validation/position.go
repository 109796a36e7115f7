package validation

import (
	"strings"

	"github.com/fundlens/fundlens/internal/api/request"
)

// ValidateCreatePosition validates a position creation request.
//
// Required fields:
//   - code: fund code, digits only is not enforced but it must be non-empty
//   - name: display name
//
// Baseline figures must be non-negative; a zero baseline is a watched fund.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Code) == "" {
		errors["code"] = "code is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.Shares < 0 {
		errors["shares"] = "shares cannot be negative"
	}
	if req.AverageCost < 0 {
		errors["averageCost"] = "averageCost cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePosition validates a position update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := make(map[string]string)

	if req.Code != nil && strings.TrimSpace(*req.Code) == "" {
		errors["code"] = "code cannot be empty"
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Shares != nil && *req.Shares < 0 {
		errors["shares"] = "shares cannot be negative"
	}
	if req.AverageCost != nil && *req.AverageCost < 0 {
		errors["averageCost"] = "averageCost cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
