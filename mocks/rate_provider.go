package mocks

import (
	"context"

	"github.com/infigaming-com/exchange-rates/rate"
	"github.com/stretchr/testify/mock"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) LatestRates(ctx context.Context) (*rate.DailyRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rate.DailyRates), args.Error(1)
}
