package request

import (
	"context"
	"errors"
	"io"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/infigaming-com/exchange-rates/util"
	"go.uber.org/zap"
)

var (
	httpClient *http.Client
	once       sync.Once
)

// Consumer reads a response body. It may return before reaching EOF; the body is closed afterwards.
type Consumer func(body io.Reader) error

type requestOption struct {
	lg                   *zap.Logger
	debugEnabled         bool
	requestHeaders       map[string]string
	correlationIdKey     string
	correlationId        string
	requestTimeout       time.Duration
	slowRequestThreshold time.Duration
}

type Option interface {
	apply(option *requestOption) error
}

type optionFunc func(option *requestOption) error

func (f optionFunc) apply(option *requestOption) error {
	return f(option)
}

func defaultRequestOption() *requestOption {
	return &requestOption{
		lg:                   zap.NewNop(),
		debugEnabled:         false,
		requestHeaders:       make(map[string]string),
		correlationIdKey:     "X-Correlation-ID",
		correlationId:        "",
		requestTimeout:       3 * time.Second,
		slowRequestThreshold: 5 * time.Second,
	}
}

func WithLogger(lg *zap.Logger) Option {
	return optionFunc(func(option *requestOption) error {
		option.lg = lg
		return nil
	})
}

func WithDebugEnabled(debugEnabled bool) Option {
	return optionFunc(func(option *requestOption) error {
		option.debugEnabled = debugEnabled
		return nil
	})
}

func WithRequestHeaders(requestHeaders map[string]string) Option {
	return optionFunc(func(option *requestOption) error {
		maps.Copy(option.requestHeaders, requestHeaders)
		return nil
	})
}

func WithCorrelationId(correlationIdKey, correlationId string) Option {
	return optionFunc(func(option *requestOption) error {
		option.correlationIdKey = correlationIdKey
		option.correlationId = correlationId
		return nil
	})
}

// WithRequestTimeout bounds the whole exchange, including the time the consumer spends reading the body.
func WithRequestTimeout(requestTimeout time.Duration) Option {
	return optionFunc(func(option *requestOption) error {
		if requestTimeout <= 0 {
			return ErrInvalidRequestTimeout.WithDetails(requestTimeout)
		}
		option.requestTimeout = requestTimeout
		return nil
	})
}

func WithSlowRequestThreshold(slowRequestThreshold time.Duration) Option {
	return optionFunc(func(option *requestOption) error {
		if slowRequestThreshold <= 0 {
			return ErrInvalidSlowRequestThreshold.WithDetails(slowRequestThreshold)
		}
		option.slowRequestThreshold = slowRequestThreshold
		return nil
	})
}

func getHttpClient() *http.Client {
	once.Do(func() {
		httpClient = &http.Client{
			Timeout: 0,
		}
	})
	return httpClient
}

// Stream sends a GET request and hands the body of a 200 response to consume.
// Any other status is returned as ErrUnexpectedStatus without calling consume.
func Stream(ctx context.Context, requestUrl string, consume Consumer, options ...Option) (httpStatusCode int, err error) {
	start := time.Now()

	option := defaultRequestOption()
	for _, opt := range options {
		if err := opt.apply(option); err != nil {
			return 0, err
		}
	}

	defer func() {
		if err != nil {
			option.lg.Error("[HTTP-REQUEST-ERROR]",
				zap.Error(err),
				zap.String("method", http.MethodGet),
				zap.String("url", requestUrl),
				zap.Int("httpStatusCode", httpStatusCode),
				zap.Duration("duration", time.Since(start)),
			)
			return
		}

		if option.debugEnabled {
			option.lg.Debug("[HTTP-REQUEST-DEBUG]",
				zap.String("method", http.MethodGet),
				zap.String("url", requestUrl),
				zap.Any("requestHeaders", option.requestHeaders),
				zap.Int("httpStatusCode", httpStatusCode),
				zap.Duration("duration", time.Since(start)),
			)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, option.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return 0, ErrFailedToCreateRequest.WithCause(err)
	}

	correlationId := option.correlationId
	if correlationId == "" {
		if fromCtx, ctxErr := util.CorrelationIdFromCtx(ctx); ctxErr == nil {
			correlationId = fromCtx
		} else {
			correlationId = util.NewCorrelationId()
		}
	}
	if option.correlationIdKey != "" {
		req.Header.Set(option.correlationIdKey, correlationId)
	}
	for k, v := range option.requestHeaders {
		req.Header.Set(k, v)
	}

	resp, err := getHttpClient().Do(req)
	if errors.Is(err, context.DeadlineExceeded) {
		return 0, ErrRequestTimeout.WithCause(err)
	}
	if err != nil {
		return 0, ErrFailedToSendRequest.WithCause(err)
	}
	defer resp.Body.Close()

	httpStatusCode = resp.StatusCode
	if httpStatusCode != http.StatusOK {
		return httpStatusCode, ErrUnexpectedStatus.WithDetails(resp.Status).WithStatusCode(httpStatusCode)
	}

	if err := consume(resp.Body); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return httpStatusCode, ErrRequestTimeout.WithCause(err)
		}
		return httpStatusCode, ErrFailedToConsumeResponse.WithCause(err)
	}

	if duration := time.Since(start); duration > option.slowRequestThreshold {
		option.lg.Warn("[HTTP-REQUEST-SLOW]",
			zap.String("method", http.MethodGet),
			zap.String("url", requestUrl),
			zap.Int("httpStatusCode", httpStatusCode),
			zap.Duration("duration", duration),
		)
	}

	return httpStatusCode, nil
}
