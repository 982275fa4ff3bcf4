package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/infigaming-com/exchange-rates/observability/metrics"
	"github.com/infigaming-com/exchange-rates/rate"
	"github.com/infigaming-com/exchange-rates/store"
	"github.com/infigaming-com/exchange-rates/util"
	"go.uber.org/zap"
)

// NoDataMessage is returned in place of rates while the table is empty.
const NoDataMessage = "No exchange rate data available at the moment. Please try again later."

// NotAvailable fills a date whose metadata record is missing.
const NotAvailable = "N/A"

type ExchangeRate struct {
	Currency         string  `json:"currency"`
	Rate             float64 `json:"rate"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"change_percentage"`
}

type RatesDocument struct {
	UpdateDate    string         `json:"update_date"`
	PublishDate   string         `json:"publish_date"`
	BaseCurrency  string         `json:"base_currency"`
	ExchangeRates []ExchangeRate `json:"exchange_rates"`
}

type ErrorDocument struct {
	Error string `json:"error"`
}

// Response holds exactly one of Rates or Error.
type Response struct {
	Rates *RatesDocument
	Error *ErrorDocument
}

func (r *Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(r.Error)
	}
	return json.Marshal(r.Rates)
}

type Reader struct {
	lg      *zap.Logger
	store   store.RateStore
	metrics *metrics.Recorder
}

type Option func(*Reader)

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(r *Reader) {
		r.metrics = recorder
	}
}

func New(lg *zap.Logger, rateStore store.RateStore, opts ...Option) *Reader {
	r := &Reader{
		lg:      lg,
		store:   rateStore,
		metrics: metrics.NewNopRecorder(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read builds the response document from every stored record.
func (r *Reader) Read(ctx context.Context) (resp *Response, err error) {
	defer func() {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusFailure
		}
		r.metrics.RecordRead(ctx, status)
	}()

	records, err := r.store.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fail to scan rates: %w", err)
	}

	if len(records) == 0 {
		r.lg.Info("[READ] no exchange rates stored yet")
		return &Response{Error: &ErrorDocument{Error: NoDataMessage}}, nil
	}

	doc := Aggregate(records)
	r.lg.Debug("[READ] rates loaded",
		zap.String("publishDate", doc.PublishDate),
		zap.String("updateDate", doc.UpdateDate),
		zap.Int("currencies", len(doc.ExchangeRates)),
	)
	return &Response{Rates: doc}, nil
}

// Render returns the response document as indented JSON.
func (r *Reader) Render(ctx context.Context) ([]byte, error) {
	resp, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(resp, "", "    ")
}

// Aggregate reshapes records into a rates document sorted by currency code.
func Aggregate(records []store.Record) *RatesDocument {
	doc := &RatesDocument{
		UpdateDate:    NotAvailable,
		PublishDate:   NotAvailable,
		BaseCurrency:  rate.BaseCurrency,
		ExchangeRates: make([]ExchangeRate, 0, len(records)),
	}

	for _, record := range records {
		switch record.ID {
		case store.PublishDateID:
			doc.PublishDate = record.Text
		case store.UpdateDateID:
			doc.UpdateDate = record.Text
		default:
			doc.ExchangeRates = append(doc.ExchangeRates, ExchangeRate{
				Currency:         record.ID,
				Rate:             util.DecimalToFloat(record.Value),
				Change:           util.DecimalToFloat(record.Diff),
				ChangePercentage: util.DecimalToFloat(record.DiffPercent),
			})
		}
	}

	slices.SortFunc(doc.ExchangeRates, func(a, b ExchangeRate) int {
		return strings.Compare(a.Currency, b.Currency)
	})
	return doc
}
