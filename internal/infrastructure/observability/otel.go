package observability

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zatekoja/medicalriskpipeline"

// Metrics holds all pipeline metrics
type Metrics struct {
	BatchCount        metric.Int64Counter
	RecordCount       metric.Int64Counter
	SkipCount         metric.Int64Counter
	PredictionCount   metric.Int64Counter
	NotificationCount metric.Int64Counter
}

// Setup initializes OpenTelemetry traces and metrics
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)
	}

	return shutdown, nil
}

// InitMetrics initializes pipeline metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	batchCount, err := meter.Int64Counter(
		"pipeline.batch.count",
		metric.WithDescription("Number of record batches consumed from the feed"),
	)
	if err != nil {
		return nil, err
	}

	recordCount, err := meter.Int64Counter(
		"pipeline.record.count",
		metric.WithDescription("Number of inserted records processed"),
	)
	if err != nil {
		return nil, err
	}

	skipCount, err := meter.Int64Counter(
		"pipeline.skip.count",
		metric.WithDescription("Number of records skipped before inference"),
	)
	if err != nil {
		return nil, err
	}

	predictionCount, err := meter.Int64Counter(
		"pipeline.prediction.count",
		metric.WithDescription("Number of model predictions made"),
	)
	if err != nil {
		return nil, err
	}

	notificationCount, err := meter.Int64Counter(
		"pipeline.notification.count",
		metric.WithDescription("Number of dual notifications attempted"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		BatchCount:        batchCount,
		RecordCount:       recordCount,
		SkipCount:         skipCount,
		PredictionCount:   predictionCount,
		NotificationCount: notificationCount,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, spanName)
}

// RecordSkip records a skipped record with the pipeline stage that rejected it
func RecordSkip(ctx context.Context, metrics *Metrics, stage string) {
	if metrics == nil {
		return
	}
	metrics.SkipCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline.stage", stage),
	))
}

// RecordPrediction records a model prediction outcome
func RecordPrediction(ctx context.Context, metrics *Metrics, atRisk bool) {
	if metrics == nil {
		return
	}
	metrics.PredictionCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("prediction.at_risk", atRisk),
	))
}

// RecordNotification records a dual notification attempt
func RecordNotification(ctx context.Context, metrics *Metrics, succeeded bool) {
	if metrics == nil {
		return
	}
	metrics.NotificationCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("notification.succeeded", succeeded),
	))
}
