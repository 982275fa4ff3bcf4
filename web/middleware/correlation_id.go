package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/exchange-rates/util"
)

const CorrelationIdKey string = "X-Correlation-ID"

// CorrelationIdMiddleware keeps the caller's correlation id, or assigns a new one,
// and exposes it on the response and the request context.
func CorrelationIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.GetHeader(CorrelationIdKey)
		if correlationId == "" {
			correlationId = util.NewCorrelationId()
		}
		c.Header(CorrelationIdKey, correlationId)
		ctx := util.CorrelationIdToCtx(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
