package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/exchange-rates/util"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// maxLoggedBody caps the response bytes copied into a debug line.
const maxLoggedBody = 1024

type loggingMiddlewareOptions struct {
	lg                   *zap.Logger
	debugEnabled         bool
	excludePaths         []string
	slowRequestThreshold time.Duration
}

type LoggingMiddlewareOption func(*loggingMiddlewareOptions)

func WithLogger(lg *zap.Logger) LoggingMiddlewareOption {
	return func(o *loggingMiddlewareOptions) {
		o.lg = lg
	}
}

func WithDebugEnabled(debugEnabled bool) LoggingMiddlewareOption {
	return func(o *loggingMiddlewareOptions) {
		o.debugEnabled = debugEnabled
	}
}

func WithExcludePaths(excludePaths []string) LoggingMiddlewareOption {
	return func(o *loggingMiddlewareOptions) {
		o.excludePaths = excludePaths
	}
}

func WithSlowRequestThreshold(threshold time.Duration) LoggingMiddlewareOption {
	return func(o *loggingMiddlewareOptions) {
		o.slowRequestThreshold = threshold
	}
}

func defaultLoggingMiddlewareOptions() *loggingMiddlewareOptions {
	return &loggingMiddlewareOptions{
		lg:                   zap.NewNop(),
		debugEnabled:         false,
		slowRequestThreshold: time.Second,
	}
}

func LoggingMiddleware(opts ...LoggingMiddlewareOption) gin.HandlerFunc {
	cfg := defaultLoggingMiddlewareOptions()

	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *gin.Context) {
		if lo.Contains(cfg.excludePaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		correlationId, err := util.CorrelationIdFromCtx(c.Request.Context())
		if err != nil {
			correlationId = util.NewCorrelationId()
		}

		startTime := time.Now()
		rw := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rw

		c.Next()

		duration := time.Since(startTime)
		fields := []zap.Field{
			zap.String("correlationId", correlationId),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
		}

		switch {
		case c.Writer.Status() >= 500:
			cfg.lg.Error("[HTTP-SERVER-ERROR]", fields...)
		case duration > cfg.slowRequestThreshold:
			cfg.lg.Warn("[HTTP-SERVER-SLOW]", fields...)
		default:
			cfg.lg.Info("[HTTP-SERVER]", fields...)
		}

		if cfg.debugEnabled {
			responseBody := rw.body.Bytes()
			if len(responseBody) > maxLoggedBody {
				responseBody = responseBody[:maxLoggedBody]
			}
			cfg.lg.Debug("[HTTP-SERVER-DEBUG]",
				zap.String("correlationId", correlationId),
				zap.Any("queryParams", c.Request.URL.Query()),
				zap.Any("requestHeaders", c.Request.Header),
				zap.ByteString("responseBody", responseBody),
			)
		}
	}
}
