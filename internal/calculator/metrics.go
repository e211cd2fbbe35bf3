package calculator

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	opsCounter      metric.Int64Counter
	opsHistogram    metric.Float64Histogram
	errorCounter    metric.Int64Counter
	resultGauge     metric.Float64Gauge
	parseFallbacks  metric.Int64Counter
	unknownOperator metric.Int64Counter

	historyRecords prometheus.Gauge
	historyClears  prometheus.Counter
)

// InitMetrics registers custom OTel metric instruments for the calculator domain
// and the history collectors on the default Prometheus registry.
// Call this once at startup (after observability.InitMetrics); repeated calls
// reuse the already registered collectors.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	parseFallbacks, err = meter.Int64Counter("calculator.parse.fallbacks.total",
		metric.WithDescription("Operands that were not numbers and were read as 0"),
		metric.WithUnit("{operand}"),
	)
	if err != nil {
		return fmt.Errorf("creating parse fallback counter: %w", err)
	}

	unknownOperator, err = meter.Int64Counter("calculator.unknown_operator.total",
		metric.WithDescription("Evaluations whose operator was not recognised and defaulted to 0"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating unknown operator counter: %w", err)
	}

	historyRecords, err = register(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "calculator_history_records",
		Help: "Number of history records currently held across all sessions.",
	}))
	if err != nil {
		return fmt.Errorf("registering history records gauge: %w", err)
	}

	historyClears, err = register(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calculator_history_clears_total",
		Help: "Number of history clear requests.",
	}))
	if err != nil {
		return fmt.Errorf("registering history clears counter: %w", err)
	}

	return nil
}

// register adds c to the default registry, returning the collector that is
// already registered under the same descriptor if there is one.
func register[T prometheus.Collector](c T) (T, error) {
	err := prometheus.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return c, err
}
