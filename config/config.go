package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/infigaming-com/exchange-rates/observability/metrics"
	"github.com/infigaming-com/exchange-rates/rate"
	"github.com/infigaming-com/exchange-rates/store"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// localstackPort is the edge port of a localstack container.
const localstackPort = 4566

// localstackCredential is accepted by localstack for both key id and secret.
const localstackCredential = "test"

// Config holds application configuration.
type Config struct {
	Dynamo      store.DynamoConfig
	FeedURL     string
	FeedTimeout time.Duration
	LogLevel    int
	Port        int64
	GinMode     string

	CORSAllowedOrigins []string

	ServiceName      string
	Environment      string
	OTLPEndpoint     string
	OTLPGRPCEndpoint string
}

// Load reads the configuration from the environment, after loading a .env file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("TABLE_NAME", "")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("DYNAMODB_ACCESS_KEY_ID", "")
	v.SetDefault("DYNAMODB_SECRET_ACCESS_KEY", "")
	v.SetDefault("LOCALSTACK_HOSTNAME", "")
	v.SetDefault("FEED_URL", rate.DefaultFeedURL)
	v.SetDefault("FEED_TIMEOUT", rate.DefaultFeedTimeout.String())
	v.SetDefault("LOG_LEVEL", 0)
	v.SetDefault("PORT", 8080)
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("SERVICE_NAME", "exchange-rates")
	v.SetDefault("SERVICE_ENVIRONMENT", "development")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_GRPC_ENDPOINT", "")
	v.AutomaticEnv()

	feedTimeout, err := time.ParseDuration(v.GetString("FEED_TIMEOUT"))
	if err != nil || feedTimeout <= 0 {
		return nil, ErrInvalidValue.WithCause(err).WithDetails(fmt.Sprintf("FEED_TIMEOUT=%q", v.GetString("FEED_TIMEOUT")))
	}

	cfg := &Config{
		Dynamo: store.DynamoConfig{
			TableName:       v.GetString("TABLE_NAME"),
			Region:          v.GetString("AWS_REGION"),
			Endpoint:        v.GetString("DYNAMODB_ENDPOINT"),
			AccessKeyId:     v.GetString("DYNAMODB_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("DYNAMODB_SECRET_ACCESS_KEY"),
		},
		FeedURL:            v.GetString("FEED_URL"),
		FeedTimeout:        feedTimeout,
		LogLevel:           v.GetInt("LOG_LEVEL"),
		Port:               v.GetInt64("PORT"),
		GinMode:            v.GetString("GIN_MODE"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		ServiceName:        v.GetString("SERVICE_NAME"),
		Environment:        v.GetString("SERVICE_ENVIRONMENT"),
		OTLPEndpoint:       v.GetString("OTLP_ENDPOINT"),
		OTLPGRPCEndpoint:   v.GetString("OTLP_GRPC_ENDPOINT"),
	}

	if cfg.Dynamo.TableName == "" {
		return nil, ErrMissingTableName
	}

	// an explicit endpoint wins over the localstack hostname
	if host := v.GetString("LOCALSTACK_HOSTNAME"); host != "" && cfg.Dynamo.Endpoint == "" {
		cfg.Dynamo.Endpoint = fmt.Sprintf("http://%s:%d", host, localstackPort)
	}
	if cfg.Dynamo.Endpoint != "" && cfg.Dynamo.AccessKeyId == "" {
		cfg.Dynamo.AccessKeyId = localstackCredential
		cfg.Dynamo.SecretAccessKey = localstackCredential
	}
	if cfg.Dynamo.Endpoint != "" && cfg.Dynamo.Region == "" {
		cfg.Dynamo.Region = "us-east-1"
	}

	return cfg, nil
}

// splitList parses a comma separated env value, dropping empty entries.
func splitList(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

// MetricsEnabled reports whether an OTLP endpoint is configured.
func (c *Config) MetricsEnabled() bool {
	return c.OTLPEndpoint != "" || c.OTLPGRPCEndpoint != ""
}

// MetricsOptions returns the recorder options for this configuration.
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithServiceName(c.ServiceName),
		metrics.WithEnvironment(c.Environment),
		metrics.WithOTLPEndpoint(c.OTLPEndpoint),
		metrics.WithOTLPGRPCEndpoint(c.OTLPGRPCEndpoint),
	}
}
