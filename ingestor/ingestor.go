package ingestor

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/infigaming-com/exchange-rates/observability/metrics"
	"github.com/infigaming-com/exchange-rates/rate"
	"github.com/infigaming-com/exchange-rates/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DateLayout is the layout of both metadata dates.
const DateLayout = "2006-01-02"

type Ingestor struct {
	lg       *zap.Logger
	provider rate.RateProvider
	store    store.RateStore
	now      func() time.Time
	metrics  *metrics.Recorder
}

type Option func(*Ingestor)

// WithClock replaces time.Now as the source of the update date.
func WithClock(now func() time.Time) Option {
	return func(i *Ingestor) {
		i.now = now
	}
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(i *Ingestor) {
		i.metrics = recorder
	}
}

func New(lg *zap.Logger, provider rate.RateProvider, rateStore store.RateStore, opts ...Option) *Ingestor {
	i := &Ingestor{
		lg:       lg,
		provider: provider,
		store:    rateStore,
		now:      time.Now,
		metrics:  metrics.NewNopRecorder(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run fetches the latest rates and overwrites the stored snapshot with them.
// Nothing is written when fetching fails.
func (i *Ingestor) Run(ctx context.Context) (err error) {
	start := time.Now()
	currencies := 0
	defer func() {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusFailure
		}
		i.metrics.RecordIngest(ctx, status, currencies, time.Since(start))
	}()

	daily, err := i.provider.LatestRates(ctx)
	if err != nil {
		return fmt.Errorf("fail to fetch latest rates: %w", err)
	}

	updateDate := i.now().UTC().Format(DateLayout)
	records := BuildRecords(daily, updateDate)
	if err := i.store.PutAll(ctx, records); err != nil {
		return fmt.Errorf("fail to persist rates: %w", err)
	}

	currencies = len(daily.Rates)
	i.lg.Info("[INGEST] rates persisted",
		zap.String("publishDate", daily.Date),
		zap.String("updateDate", updateDate),
		zap.Int("currencies", currencies),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// BuildRecords turns daily into one record per currency, in code order,
// followed by the publish and update date records.
func BuildRecords(daily *rate.DailyRates, updateDate string) []store.Record {
	currencies := lo.Keys(daily.Rates)
	slices.Sort(currencies)

	records := make([]store.Record, 0, len(currencies)+2)
	for _, currency := range currencies {
		r := daily.Rates[currency]
		records = append(records, store.NewRateRecord(currency, r.Value, r.Diff, r.DiffPercent))
	}
	return append(records,
		store.NewMetadataRecord(store.PublishDateID, daily.Date),
		store.NewMetadataRecord(store.UpdateDateID, updateDate),
	)
}
