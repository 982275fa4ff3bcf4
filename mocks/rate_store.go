package mocks

import (
	"context"

	"github.com/infigaming-com/exchange-rates/store"
	"github.com/stretchr/testify/mock"
)

type MockRateStore struct {
	mock.Mock
}

func (m *MockRateStore) Scan(ctx context.Context) ([]store.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Record), args.Error(1)
}

func (m *MockRateStore) PutAll(ctx context.Context, records []store.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}
