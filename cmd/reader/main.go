package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/exchange-rates/config"
	"github.com/infigaming-com/exchange-rates/handler"
	"github.com/infigaming-com/exchange-rates/observability/metrics"
	"github.com/infigaming-com/exchange-rates/reader"
	"github.com/infigaming-com/exchange-rates/store"
	"github.com/infigaming-com/exchange-rates/util"
	"github.com/infigaming-com/exchange-rates/web"
	"github.com/infigaming-com/exchange-rates/web/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("fail to load config: %v", err)
	}

	lg, syncLogger, err := util.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("fail to build logger: %v", err)
	}
	defer syncLogger()

	rateStore, err := store.NewDynamoRateStore(context.Background(), lg, &cfg.Dynamo)
	if err != nil {
		lg.Fatal("fail to create rate store", zap.Error(err))
	}

	opts := []reader.Option{}
	if cfg.MetricsEnabled() {
		recorder, shutdown, err := metrics.NewRecorder(cfg.MetricsOptions()...)
		if err != nil {
			lg.Fatal("fail to create metrics recorder", zap.Error(err))
		}
		defer shutdown()
		opts = append(opts, reader.WithMetrics(recorder))
	}

	r := reader.New(lg, rateStore, opts...)

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(handler.NewAPIGatewayHandler(lg, r))
		return
	}

	serverOpts := []web.Option{
		web.WithMode(cfg.GinMode),
		web.WithPort(cfg.Port),
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		serverOpts = append(serverOpts, web.WithCustomHandler(middleware.CorsMiddleware(cfg.CORSAllowedOrigins)))
	}
	serverOpts = append(serverOpts,
		web.WithCustomHandler(middleware.CorrelationIdMiddleware()),
		web.WithCustomHandler(middleware.LoggingMiddleware(
			middleware.WithLogger(lg),
			middleware.WithDebugEnabled(lg.Core().Enabled(zap.DebugLevel)),
			middleware.WithExcludePaths([]string{"/", "/healthcheck"}),
		)),
		web.WithRoutes(func(router gin.IRouter) {
			router.GET(handler.ExchangeRatesPath, handler.ExchangeRatesHandler(lg, r))
		}),
	)

	web.StartServer(lg, serverOpts...)
}
