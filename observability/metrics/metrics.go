package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Instrument names.
const (
	IngestRunsName       = "exchange_rates.ingest.runs"
	IngestDurationName   = "exchange_rates.ingest.duration"
	IngestCurrenciesName = "exchange_rates.ingest.currencies"
	ReadRequestsName     = "exchange_rates.read.requests"
)

// Status attribute values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder owns the exchange rates instruments.
type Recorder struct {
	meterProvider    *sdkmetric.MeterProvider
	reader           sdkmetric.Reader
	serviceName      string
	serviceNamespace string
	serviceVersion   string
	otlpEndpoint     string
	otlpGRPCEndpoint string
	environment      string

	ingestRuns       metric.Int64Counter
	ingestDuration   metric.Float64Histogram
	ingestCurrencies metric.Int64Histogram
	readRequests     metric.Int64Counter
}

// Option is a function that configures a Recorder
type Option func(*Recorder)

// WithServiceName sets the service name
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithServiceNamespace sets the service namespace
func WithServiceNamespace(namespace string) Option {
	return func(r *Recorder) {
		r.serviceNamespace = namespace
	}
}

// WithServiceVersion sets the service version
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		r.serviceVersion = version
	}
}

// WithOTLPEndpoint sets the OTLP HTTP endpoint
func WithOTLPEndpoint(endpoint string) Option {
	return func(r *Recorder) {
		r.otlpEndpoint = endpoint
	}
}

// WithOTLPGRPCEndpoint sets the OTLP gRPC endpoint
func WithOTLPGRPCEndpoint(endpoint string) Option {
	return func(r *Recorder) {
		r.otlpGRPCEndpoint = endpoint
	}
}

// WithEnvironment sets the deployment environment
func WithEnvironment(env string) Option {
	return func(r *Recorder) {
		r.environment = env
	}
}

// WithReader replaces the OTLP exporter with the given reader.
func WithReader(reader sdkmetric.Reader) Option {
	return func(r *Recorder) {
		r.reader = reader
	}
}

func defaultConfig() *Recorder {
	return &Recorder{
		serviceName:      "exchange-rates",
		serviceNamespace: "default",
		serviceVersion:   "1.0.0",
		otlpEndpoint:     "",
		otlpGRPCEndpoint: "",
		environment:      "development",
	}
}

// NewRecorder creates a recorder backed by an OTLP exporter, or by the reader given with WithReader.
func NewRecorder(opts ...Option) (*Recorder, func(), error) {
	r := defaultConfig()
	for _, opt := range opts {
		opt(r)
	}

	if r.reader == nil && r.otlpEndpoint == "" && r.otlpGRPCEndpoint == "" {
		return nil, nil, fmt.Errorf("OTLP endpoint is required when no reader is configured")
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(r.serviceName),
			semconv.ServiceNamespace(r.serviceNamespace),
			semconv.ServiceVersion(r.serviceVersion),
			semconv.DeploymentEnvironment(r.environment),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	reader := r.reader
	if reader == nil {
		var exporter sdkmetric.Exporter
		if r.otlpGRPCEndpoint != "" {
			exporter, err = otlpmetricgrpc.New(context.Background(),
				otlpmetricgrpc.WithEndpoint(r.otlpGRPCEndpoint),
				otlpmetricgrpc.WithInsecure(),
			)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create OTLP gRPC exporter: %w", err)
			}
		} else {
			exporter, err = otlpmetrichttp.New(context.Background(),
				otlpmetrichttp.WithEndpoint(r.otlpEndpoint),
				otlpmetrichttp.WithInsecure(),
			)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
			}
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	if r.reader == nil {
		otel.SetMeterProvider(r.meterProvider)
	}

	if err := r.createInstruments(r.meterProvider.Meter(r.serviceName)); err != nil {
		return nil, nil, err
	}

	return r, func() {
		_ = r.meterProvider.Shutdown(context.Background())
	}, nil
}

// NewNopRecorder returns a recorder whose instruments discard everything.
func NewNopRecorder() *Recorder {
	r := defaultConfig()
	// noop instruments never fail to register
	_ = r.createInstruments(noop.NewMeterProvider().Meter(r.serviceName))
	return r
}

func (r *Recorder) createInstruments(meter metric.Meter) error {
	var err error

	r.ingestRuns, err = meter.Int64Counter(IngestRunsName,
		metric.WithDescription("Ingestion runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}

	r.ingestDuration, err = meter.Float64Histogram(IngestDurationName,
		metric.WithDescription("Duration of ingestion runs"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("failed to create histogram: %w", err)
	}

	r.ingestCurrencies, err = meter.Int64Histogram(IngestCurrenciesName,
		metric.WithDescription("Currencies written per ingestion run"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create histogram: %w", err)
	}

	r.readRequests, err = meter.Int64Counter(ReadRequestsName,
		metric.WithDescription("Exchange rates read requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}

	return nil
}

// Close gracefully shuts down the meter provider
func (r *Recorder) Close(ctx context.Context) error {
	if r.meterProvider == nil {
		return nil
	}
	return r.meterProvider.Shutdown(ctx)
}

// RecordIngest records one ingestion run. currencies is only recorded for successful runs.
func (r *Recorder) RecordIngest(ctx context.Context, status string, currencies int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", status))

	r.ingestRuns.Add(ctx, 1, attrs)
	r.ingestDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if status == StatusSuccess {
		r.ingestCurrencies.Record(ctx, int64(currencies))
	}
}

func (r *Recorder) RecordRead(ctx context.Context, status string) {
	r.readRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
