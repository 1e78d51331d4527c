package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics defines the interface for recording protection pipeline metrics.
// Implementations track operation counts, durations, and the malformed lines
// skipped by the configuration-file codec.
type PipelineMetrics interface {
	// RecordOperation records a pipeline operation with its status.
	// Domain examples: "crypto", "envfile"
	// Operation examples: "encrypt", "decrypt", "generate_key", "encrypt_file"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a pipeline operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordMalformedLines records the number of malformed configuration lines
	// skipped during a codec run.
	RecordMalformedLines(ctx context.Context, operation string, count int)
}

// pipelineMetrics implements PipelineMetrics using OpenTelemetry metrics.
type pipelineMetrics struct {
	operationCounter     metric.Int64Counter
	durationHisto        metric.Float64Histogram
	malformedLineCounter metric.Int64Counter
}

// NewPipelineMetrics creates a new PipelineMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "envseal").
// Returns error if meters cannot be initialized.
func NewPipelineMetrics(meterProvider metric.MeterProvider, namespace string) (PipelineMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of pipeline operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of pipeline operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	malformedLineCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_malformed_lines_total", namespace),
		metric.WithDescription("Total number of malformed configuration lines skipped"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create malformed line counter: %w", err)
	}

	return &pipelineMetrics{
		operationCounter:     operationCounter,
		durationHisto:        durationHisto,
		malformedLineCounter: malformedLineCounter,
	}, nil
}

// RecordOperation increments the operation counter with domain, operation, and status labels.
func (p *pipelineMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	p.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordDuration records the operation duration in seconds with domain, operation, and status labels.
func (p *pipelineMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	p.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordMalformedLines increments the malformed line counter with an operation label.
func (p *pipelineMetrics) RecordMalformedLines(ctx context.Context, operation string, count int) {
	if count <= 0 {
		return
	}
	p.malformedLineCounter.Add(ctx, int64(count),
		metric.WithAttributes(
			attribute.String("operation", operation),
		),
	)
}

// NoOpPipelineMetrics is a no-op implementation of PipelineMetrics for when metrics are disabled.
type NoOpPipelineMetrics struct{}

// NewNoOpPipelineMetrics creates a no-op PipelineMetrics implementation.
func NewNoOpPipelineMetrics() PipelineMetrics {
	return &NoOpPipelineMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpPipelineMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	// No-op
}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpPipelineMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	// No-op
}

// RecordMalformedLines does nothing when metrics are disabled.
func (n *NoOpPipelineMetrics) RecordMalformedLines(ctx context.Context, operation string, count int) {
	// No-op
}
