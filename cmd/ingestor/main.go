package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/infigaming-com/exchange-rates/config"
	"github.com/infigaming-com/exchange-rates/handler"
	"github.com/infigaming-com/exchange-rates/ingestor"
	"github.com/infigaming-com/exchange-rates/observability/metrics"
	"github.com/infigaming-com/exchange-rates/rate"
	"github.com/infigaming-com/exchange-rates/store"
	"github.com/infigaming-com/exchange-rates/util"
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

	ctx := context.Background()

	rateStore, err := store.NewDynamoRateStore(ctx, lg, &cfg.Dynamo)
	if err != nil {
		lg.Fatal("fail to create rate store", zap.Error(err))
	}

	opts := []ingestor.Option{}
	if cfg.MetricsEnabled() {
		recorder, shutdown, err := metrics.NewRecorder(cfg.MetricsOptions()...)
		if err != nil {
			lg.Fatal("fail to create metrics recorder", zap.Error(err))
		}
		defer shutdown()
		opts = append(opts, ingestor.WithMetrics(recorder))
	}

	provider := rate.NewECBRateProvider(lg, cfg.FeedURL, cfg.FeedTimeout)
	ing := ingestor.New(lg, provider, rateStore, opts...)

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(handler.NewScheduledHandler(lg, ing))
		return
	}

	if err := ing.Run(util.CorrelationIdToCtx(ctx, util.NewCorrelationId())); err != nil {
		lg.Fatal("[INGEST] run failed", zap.Error(err))
	}
}
