package rate

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/infigaming-com/exchange-rates/ecb"
	"github.com/infigaming-com/exchange-rates/request"
	"go.uber.org/zap"
)

// DefaultFeedURL carries the last 90 days; only the newest two are read.
const DefaultFeedURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-hist-90d.xml"

const DefaultFeedTimeout = 30 * time.Second

type ecbRateProvider struct {
	lg      *zap.Logger
	url     string
	timeout time.Duration
}

func NewECBRateProvider(lg *zap.Logger, url string, timeout time.Duration) RateProvider {
	return &ecbRateProvider{
		lg:      lg,
		url:     url,
		timeout: timeout,
	}
}

func (p *ecbRateProvider) LatestRates(ctx context.Context) (*DailyRates, error) {
	var snapshots []ecb.Snapshot
	_, err := request.Stream(
		ctx,
		p.url,
		func(body io.Reader) error {
			var parseErr error
			snapshots, parseErr = ecb.ParseLatest(body, 2)
			return parseErr
		},
		request.WithLogger(p.lg),
		request.WithRequestTimeout(p.timeout),
		request.WithRequestHeaders(map[string]string{"Accept": "application/xml"}),
	)
	if err != nil {
		if isFeedContentError(err) {
			return nil, ErrInvalidFeed.WithCause(err).WithDetails(p.url)
		}
		return nil, ErrFeedUnavailable.WithCause(err).WithDetails(p.url)
	}

	latest, previous := snapshots[0], snapshots[1]
	p.lg.Debug("[ECB-RATES] snapshots read",
		zap.String("latestDate", latest.Date),
		zap.Int("latestCurrencies", len(latest.Rates)),
		zap.String("previousDate", previous.Date),
		zap.Int("previousCurrencies", len(previous.Rates)),
	)

	return ComputeDeltas(latest, previous)
}

func isFeedContentError(err error) bool {
	return errors.Is(err, ecb.ErrMalformedFeed) ||
		errors.Is(err, ecb.ErrNotEnoughSnapshots) ||
		errors.Is(err, ecb.ErrInvalidRate)
}
