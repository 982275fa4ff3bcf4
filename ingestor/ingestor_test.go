package ingestor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/infigaming-com/exchange-rates/mocks"
	"github.com/infigaming-com/exchange-rates/rate"
	"github.com/infigaming-com/exchange-rates/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dailyRates() *rate.DailyRates {
	return &rate.DailyRates{
		Date: "2023-11-24",
		Rates: map[string]rate.Rate{
			"USD": {
				Currency:    "USD",
				Value:       decimal.RequireFromString("1.0801"),
				Diff:        decimal.RequireFromString("-0.0023"),
				DiffPercent: decimal.RequireFromString("-0.2125"),
			},
			"JPY": {
				Currency:    "JPY",
				Value:       decimal.RequireFromString("162.47"),
				Diff:        decimal.Zero,
				DiffPercent: decimal.Zero,
			},
		},
	}
}

func TestRunPersistsRatesAndMetadata(t *testing.T) {
	provider := new(mocks.MockRateProvider)
	rateStore := new(mocks.MockRateStore)

	provider.On("LatestRates", mock.Anything).Return(dailyRates(), nil)

	var written []store.Record
	rateStore.On("PutAll", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(1).([]store.Record)
		}).
		Return(nil)

	// 23:30 in UTC-5 is already the next day in UTC
	clock := func() time.Time {
		return time.Date(2023, 11, 24, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	}

	err := New(zap.NewNop(), provider, rateStore, WithClock(clock)).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, written, 4)
	assert.Equal(t, "JPY", written[0].ID)
	assert.Equal(t, "USD", written[1].ID)
	assert.True(t, decimal.RequireFromString("-0.2125").Equal(written[1].DiffPercent))
	assert.Equal(t, store.NewMetadataRecord(store.PublishDateID, "2023-11-24"), written[2])
	assert.Equal(t, store.NewMetadataRecord(store.UpdateDateID, "2023-11-25"), written[3])

	provider.AssertExpectations(t)
	rateStore.AssertExpectations(t)
}

func TestRunDoesNotWriteWhenFetchFails(t *testing.T) {
	provider := new(mocks.MockRateProvider)
	rateStore := new(mocks.MockRateStore)

	provider.On("LatestRates", mock.Anything).Return(nil, rate.ErrFeedUnavailable)

	err := New(zap.NewNop(), provider, rateStore).Run(context.Background())
	assert.ErrorIs(t, err, rate.ErrFeedUnavailable)
	rateStore.AssertNotCalled(t, "PutAll", mock.Anything, mock.Anything)
}

func TestRunReturnsStoreError(t *testing.T) {
	provider := new(mocks.MockRateProvider)
	rateStore := new(mocks.MockRateStore)

	provider.On("LatestRates", mock.Anything).Return(dailyRates(), nil)
	rateStore.On("PutAll", mock.Anything, mock.Anything).Return(store.ErrUnprocessedItems)

	err := New(zap.NewNop(), provider, rateStore).Run(context.Background())
	assert.ErrorIs(t, err, store.ErrUnprocessedItems)
}

func TestRunIsIdempotent(t *testing.T) {
	provider := new(mocks.MockRateProvider)
	rateStore := new(mocks.MockRateStore)

	provider.On("LatestRates", mock.Anything).Return(dailyRates(), nil)

	var writes [][]store.Record
	rateStore.On("PutAll", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			writes = append(writes, args.Get(1).([]store.Record))
		}).
		Return(nil)

	clock := func() time.Time { return time.Date(2023, 11, 25, 6, 0, 0, 0, time.UTC) }
	ing := New(zap.NewNop(), provider, rateStore, WithClock(clock))

	require.NoError(t, ing.Run(context.Background()))
	require.NoError(t, ing.Run(context.Background()))
	require.Len(t, writes, 2)
	assert.Equal(t, writes[0], writes[1])
}

func TestBuildRecordsWithoutCurrencies(t *testing.T) {
	records := BuildRecords(&rate.DailyRates{Date: "2023-11-24"}, "2023-11-25")

	assert.Equal(t, []store.Record{
		store.NewMetadataRecord(store.PublishDateID, "2023-11-24"),
		store.NewMetadataRecord(store.UpdateDateID, "2023-11-25"),
	}, records)
}

func TestRunWrapsProviderError(t *testing.T) {
	provider := new(mocks.MockRateProvider)
	cause := errors.New("dns failure")
	provider.On("LatestRates", mock.Anything).Return(nil, rate.ErrFeedUnavailable.WithCause(cause))

	err := New(zap.NewNop(), provider, new(mocks.MockRateStore)).Run(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fail to fetch latest rates")
}
