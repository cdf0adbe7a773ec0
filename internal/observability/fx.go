package observability

import (
	"github.com/smallbiznis/whateat/internal/observability/logger"
	"github.com/smallbiznis/whateat/internal/observability/metrics"
	"github.com/smallbiznis/whateat/internal/observability/tracing"
	"github.com/smallbiznis/whateat/pkg/telemetry"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		loggerConfig,
		logger.New,
		tracingConfig,
		tracing.NewProvider,
		metricsConfig,
		metrics.NewProvider,
		metrics.New,
		telemetryConfig,
	),
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func loggerConfig(cfg Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.ServiceName,
		Environment:         cfg.Environment,
		Version:             cfg.Version,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		SamplingInitial:     cfg.LogSampleInitial,
		SamplingThereafter:  cfg.LogSampleThereafter,
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Debug(),
	}
}

func tracingConfig(cfg Config) tracing.Config {
	return tracing.Config{
		Enabled:           cfg.OtelEnabled,
		ServiceName:       cfg.ServiceName,
		ServiceVersion:    cfg.Version,
		Environment:       cfg.Environment,
		ExporterEndpoint:  cfg.OtelExporterEndpoint,
		ExporterProtocol:  cfg.OtelExporterProtocol,
		SamplingRatio:     cfg.OtelSamplingRatio,
		DrawSamplingRatio: max(cfg.OtelSamplingRatio, cfg.DrawTraceSamplingRatio),
	}
}

func metricsConfig(cfg Config) metrics.Config {
	return metrics.Config{
		Enabled:          cfg.OtelEnabled,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
		ServiceName:      cfg.ServiceName,
		Namespace:        cfg.MetricsNamespace,
	}
}

func telemetryConfig(cfg Config) telemetry.Config {
	return telemetry.Config{Namespace: cfg.MetricsNamespace}
}
