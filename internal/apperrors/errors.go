package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrTradeEventNotFound indicates that a trade event with the given ID does not exist.
	ErrTradeEventNotFound = errors.New("trade event not found")

	// ErrNAVNotFound indicates no NAV record for a specific fund and date combination.
	ErrNAVNotFound = errors.New("nav price not found")

	// ErrFundNotFound indicates the external provider has no data for the fund code.
	ErrFundNotFound = errors.New("fund not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, not missing entities or validation issues.
var (
	// ErrProviderUnavailable indicates the market data provider could not be reached.
	ErrProviderUnavailable = errors.New("market data provider unavailable")

	// ErrProviderResponse indicates the provider answered with an unparseable payload.
	ErrProviderResponse = errors.New("unexpected market data provider response")
)
