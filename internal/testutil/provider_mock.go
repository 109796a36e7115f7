package testutil

import (
	"context"

	"github.com/fundlens/fundlens/internal/apperrors"
	"github.com/fundlens/fundlens/internal/model"
)

// MockProviderClient is an in-memory eastmoney.Client for tests.
// Configure it with per-code history and estimates; unknown codes return
// ErrFundNotFound like the real provider.
type MockProviderClient struct {
	History   map[string]model.NAVSeries
	Estimates map[string]*model.RealtimeEstimate

	HistoryErr  error
	EstimateErr error

	HistoryCalls  int
	EstimateCalls int
}

// NewMockProviderClient creates an empty mock provider.
func NewMockProviderClient() *MockProviderClient {
	return &MockProviderClient{
		History:   map[string]model.NAVSeries{},
		Estimates: map[string]*model.RealtimeEstimate{},
	}
}

// FetchHistory returns the configured series for a code.
func (m *MockProviderClient) FetchHistory(_ context.Context, code string, _ int) (model.NAVSeries, error) {
	m.HistoryCalls++
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	series, ok := m.History[code]
	if !ok {
		return nil, apperrors.ErrFundNotFound
	}
	return series, nil
}

// FetchEstimate returns the configured estimate for a code.
func (m *MockProviderClient) FetchEstimate(_ context.Context, code string) (*model.RealtimeEstimate, error) {
	m.EstimateCalls++
	if m.EstimateErr != nil {
		return nil, m.EstimateErr
	}
	estimate, ok := m.Estimates[code]
	if !ok {
		return nil, apperrors.ErrFundNotFound
	}
	return estimate, nil
}
