package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/exchange-rates/ingestor"
	"github.com/infigaming-com/exchange-rates/reader"
	"github.com/infigaming-com/exchange-rates/util"
	"go.uber.org/zap"
)

// ExchangeRatesPath is the only route the reader serves.
const ExchangeRatesPath = "/exchangerates"

const contentTypeJSON = "application/json"

type APIGatewayHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type ScheduledHandler func(ctx context.Context, event events.CloudWatchEvent) error

// NewAPIGatewayHandler serves the reader document to API Gateway proxy requests.
// Store failures are returned to the runtime rather than encoded in the body.
func NewAPIGatewayHandler(lg *zap.Logger, r *reader.Reader) APIGatewayHandler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ctx = util.CorrelationIdToCtx(ctx, correlationId(req))

		body, err := r.Render(ctx)
		if err != nil {
			lg.Error("[API-GATEWAY] fail to render exchange rates",
				zap.Error(err),
				zap.String("path", req.Path),
				zap.String("requestId", req.RequestContext.RequestID),
			)
			return events.APIGatewayProxyResponse{}, err
		}

		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": contentTypeJSON},
			Body:       string(body),
		}, nil
	}
}

func correlationId(req events.APIGatewayProxyRequest) string {
	if req.RequestContext.RequestID != "" {
		return req.RequestContext.RequestID
	}
	return util.NewCorrelationId()
}

// NewScheduledHandler runs one ingestion per scheduler event.
func NewScheduledHandler(lg *zap.Logger, ing *ingestor.Ingestor) ScheduledHandler {
	return func(ctx context.Context, event events.CloudWatchEvent) error {
		ctx = util.CorrelationIdToCtx(ctx, util.NewCorrelationId())

		if err := ing.Run(ctx); err != nil {
			lg.Error("[SCHEDULED] ingestion failed",
				zap.Error(err),
				zap.String("eventId", event.ID),
				zap.Time("eventTime", event.Time),
			)
			return err
		}
		return nil
	}
}

// ExchangeRatesHandler serves the reader document on the local gin server.
func ExchangeRatesHandler(lg *zap.Logger, r *reader.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := r.Render(c.Request.Context())
		if err != nil {
			lg.Error("[HTTP] fail to render exchange rates", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, contentTypeJSON, body)
	}
}
