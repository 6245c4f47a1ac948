package observability

import (
	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/felixmixwr/gestao-sync/internal/observability/metrics"
	"github.com/felixmixwr/gestao-sync/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// Module wires tracing and prometheus metrics.
var Module = fx.Module("observability",
	fx.Provide(provideTracingConfig),
	fx.Provide(tracing.NewProvider),
	fx.Invoke(ensureTracingProvider),
	fx.Invoke(ensureSyncMetrics),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}

func ensureSyncMetrics() { metrics.Sync() }

func provideTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.OtelEnabled,
		ServiceName:      cfg.AppName,
		ServiceVersion:   cfg.AppVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.OTLPEndpoint,
	}
}
