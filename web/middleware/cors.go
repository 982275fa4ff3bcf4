package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/exchange-rates/util"
)

// CorsMiddleware lets browsers on the allowed origins read the exchange rates.
func CorsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: util.MakeAllowedOriginValidator(allowedOrigins),
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Accept", CorrelationIdKey},
		ExposeHeaders:   []string{CorrelationIdKey},
		MaxAge:          12 * time.Hour,
	})
}
