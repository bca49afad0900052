package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// ShutdownFunc flushes and stops the installed meter provider.
type ShutdownFunc func(ctx context.Context) error

func installMeterProvider(readers ...metric.Reader) ShutdownFunc {
	opts := make([]metric.Option, 0, len(readers))
	for _, r := range readers {
		opts = append(opts, metric.WithReader(r))
	}
	mp := metric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	return mp.Shutdown
}

// NewConsoleMetricsExporter serves for test/dev environment.
// The stats of the trees and maps created after this call are
// written into w periodically.
func NewConsoleMetricsExporter(w io.Writer, interval, timeout time.Duration) (ShutdownFunc, error) {
	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(w),
	)
	if err != nil {
		return nil, err
	}
	return installMeterProvider(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)), nil
}

// NewPrometheusMetricsExporter serves for the product environment,
// the stats are fetched by HTTP from the registerer.
// A nil registerer means the prometheus default registerer.
func NewPrometheusMetricsExporter(registerer promclient.Registerer) (ShutdownFunc, error) {
	opts := make([]prometheus.Option, 0, 1)
	if registerer != nil {
		opts = append(opts, prometheus.WithRegisterer(registerer))
	}
	exporter, err := prometheus.New(opts...)
	if err != nil {
		return nil, err
	}
	return installMeterProvider(exporter), nil
}

// NewManualMetricsReader collects the stats on demand.
func NewManualMetricsReader() (*metric.ManualReader, ShutdownFunc) {
	reader := metric.NewManualReader()
	return reader, installMeterProvider(reader)
}
