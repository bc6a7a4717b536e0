package observability

import (
	"github.com/markahope-aag/hazardos-sub007/internal/observability/logger"
	"github.com/markahope-aag/hazardos-sub007/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		provideLoggerConfig,
		logger.New,
		provideMetricsConfig,
		metrics.NewProvider,
		metrics.New,
	),
)

func provideLoggerConfig(cfg Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.ServiceName,
		Environment:         cfg.Environment,
		Version:             cfg.Version,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		Debug:               cfg.Debug(),
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Debug(),
	}
}

func provideMetricsConfig(cfg Config) metrics.Config {
	return metrics.Config{
		Enabled:          cfg.OtelEnabled,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
		ServiceName:      cfg.ServiceName,
		Environment:      cfg.Environment,
	}
}
