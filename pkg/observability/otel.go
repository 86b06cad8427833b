// Package observability sets up logging, tracing and metrics for choicesctl.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	serviceVersion = "1.0.0"
	exportTimeout  = 10 * time.Second
)

// Options configures Init.
type Options struct {
	ServiceName string
	// Enabled exports logs, traces and metrics over OTLP/gRPC. When false,
	// logs go to Writer and the providers export nothing.
	Enabled bool
	Level   slog.Level
	JSON    bool
	Writer  io.Writer // defaults to os.Stderr
}

// Providers holds the OpenTelemetry providers created by Init.
type Providers struct {
	Logs    *log.LoggerProvider
	Traces  *sdktrace.TracerProvider
	Metrics *sdkmetric.MeterProvider
}

// Shutdown flushes and stops every provider.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Traces != nil {
		errs = append(errs, p.Traces.Shutdown(ctx))
	}
	if p.Metrics != nil {
		errs = append(errs, p.Metrics.Shutdown(ctx))
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// Init creates the tracer, meter and logger providers, installs the first
// two globally and returns the logger to use.
//
// When opts.Enabled is false nothing is exported: the providers record
// nothing and the logger writes text or JSON to opts.Writer. Otherwise all
// three signals go over OTLP/gRPC, configured by the standard variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: collector address
//   - OTEL_EXPORTER_OTLP_HEADERS: auth headers, URL-encoded values allowed
//   - OTEL_RESOURCE_ATTRIBUTES: extra resource attributes
func Init(ctx context.Context, opts Options) (*Providers, *slog.Logger, error) {
	if !opts.Enabled {
		p := &Providers{
			Logs:    log.NewLoggerProvider(),
			Traces:  sdktrace.NewTracerProvider(),
			Metrics: sdkmetric.NewMeterProvider(),
		}
		p.install()
		return p, localLogger(opts), nil
	}

	res, err := newResource(ctx, opts.ServiceName)
	if err != nil {
		return nil, nil, err
	}
	headers := parseOTLPHeaders()

	// Exporters get context.Background() so a cancelled ctx cannot hang Shutdown.
	p := &Providers{}
	traceExporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithTimeout(exportTimeout),
		otlptracegrpc.WithHeaders(headers),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	p.Traces = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)

	metricExporter, err := otlpmetricgrpc.New(context.Background(),
		otlpmetricgrpc.WithTimeout(exportTimeout),
		otlpmetricgrpc.WithHeaders(headers),
	)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	p.Metrics = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(15*time.Second),
		)),
	)

	logExporter, err := otlploggrpc.New(context.Background(),
		otlploggrpc.WithTimeout(exportTimeout),
		otlploggrpc.WithHeaders(headers),
	)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, nil, fmt.Errorf("failed to create log exporter: %w", err)
	}
	p.Logs = log.NewLoggerProvider(
		log.WithProcessor(log.NewBatchProcessor(logExporter, log.WithExportTimeout(5*time.Second))),
		log.WithResource(res),
	)

	p.install()
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return p, otelslog.NewLogger(opts.ServiceName, otelslog.WithLoggerProvider(p.Logs)), nil
}

// install makes the tracer and meter providers the global ones, which is
// where the store picks them up.
func (p *Providers) install() {
	otel.SetTracerProvider(p.Traces)
	otel.SetMeterProvider(p.Metrics)
}

func localLogger(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// parseOTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS and URL-decodes values.
func parseOTLPHeaders() map[string]string {
	raw := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")
	if raw == "" {
		return nil
	}

	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		value, err := url.QueryUnescape(kv[1])
		if err != nil {
			value = kv[1]
		}
		headers[strings.TrimSpace(kv[0])] = value
	}
	return headers
}

// newResource merges the service attributes (and OTEL_RESOURCE_ATTRIBUTES)
// with the SDK defaults. Partial resources are not an error.
func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	serviceResource, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
		resource.WithSchemaURL(semconv.SchemaURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service resource: %w", err)
	}

	res, err := resource.Merge(resource.Default(), serviceResource)
	if err != nil {
		if errors.Is(err, resource.ErrPartialResource) || errors.Is(err, resource.ErrSchemaURLConflict) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to merge resources: %w", err)
	}
	return res, nil
}
