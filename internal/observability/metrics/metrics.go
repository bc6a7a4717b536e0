package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	estimatesComputed metric.Int64Counter
	estimateLineItems metric.Int64Counter
	surveysCreated    metric.Int64Counter
	rateTableLoads    metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "hazardos"
	}
	meter := provider.Meter(name)

	estimatesComputed, err := meter.Int64Counter("hazardos_estimates_computed_total")
	if err != nil {
		return nil, err
	}
	estimateLineItems, err := meter.Int64Counter("hazardos_estimate_line_items_total")
	if err != nil {
		return nil, err
	}
	surveysCreated, err := meter.Int64Counter("hazardos_surveys_created_total")
	if err != nil {
		return nil, err
	}
	rateTableLoads, err := meter.Int64Counter("hazardos_rate_table_loads_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		estimatesComputed: estimatesComputed,
		estimateLineItems: estimateLineItems,
		surveysCreated:    surveysCreated,
		rateTableLoads:    rateTableLoads,
	}, nil
}

// RecordEstimateComputed increments estimate counts.
func (m *Metrics) RecordEstimateComputed(ctx context.Context, hazardType string, lineItems int) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("hazard_type", strings.TrimSpace(hazardType)))
	m.estimatesComputed.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.estimateLineItems.Add(ctx, int64(lineItems), metric.WithAttributes(attrs...))
}

// RecordSurveyCreated increments survey creation counts.
func (m *Metrics) RecordSurveyCreated(ctx context.Context, hazardType string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("hazard_type", strings.TrimSpace(hazardType)))
	m.surveysCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateTableLoad increments provider load counts.
func (m *Metrics) RecordRateTableLoad(ctx context.Context, orgID string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("org_id", strings.TrimSpace(orgID)))
	m.rateTableLoads.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"org_id":      {},
	"hazard_type": {},
	"endpoint":    {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
