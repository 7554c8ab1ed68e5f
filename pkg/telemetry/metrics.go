package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/mamecholeye-lab/Rmam"

// Metrics holds the domain instruments. A nil *Metrics records nothing.
type Metrics struct {
	draws        metric.Int64Counter
	randomValues metric.Int64Counter
	rejections   metric.Int64Counter
	poolSize     metric.Int64Histogram
	imports      metric.Int64Counter
	importedRows metric.Int64Counter
}

// NewMetrics creates the instruments on mp. Pass nil to use the global
// provider installed by Setup.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	var m Metrics
	var err error
	if m.draws, err = meter.Int64Counter("rmam.selection.draws",
		metric.WithDescription("Completed draws by mode")); err != nil {
		return nil, fmt.Errorf("metric draws: %w", err)
	}
	if m.randomValues, err = meter.Int64Counter("rmam.selection.random_values",
		metric.WithDescription("Random values consumed by the sampler")); err != nil {
		return nil, fmt.Errorf("metric random_values: %w", err)
	}
	if m.rejections, err = meter.Int64Counter("rmam.selection.rejections",
		metric.WithDescription("Candidates discarded because they were already drawn")); err != nil {
		return nil, fmt.Errorf("metric rejections: %w", err)
	}
	if m.poolSize, err = meter.Int64Histogram("rmam.selection.pool_size",
		metric.WithDescription("Items eligible for a draw after filtering")); err != nil {
		return nil, fmt.Errorf("metric pool_size: %w", err)
	}
	if m.imports, err = meter.Int64Counter("rmam.collection.imports",
		metric.WithDescription("Imports by detected input format")); err != nil {
		return nil, fmt.Errorf("metric imports: %w", err)
	}
	if m.importedRows, err = meter.Int64Counter("rmam.collection.imported_items",
		metric.WithDescription("Items created by imports")); err != nil {
		return nil, fmt.Errorf("metric imported_items: %w", err)
	}
	return &m, nil
}

// RecordDraw records one draw. values is the number of random values
// consumed; picked the number of items returned.
func (m *Metrics) RecordDraw(ctx context.Context, mode string, poolSize, values, picked int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("mode", mode))
	m.draws.Add(ctx, 1, attrs)
	m.randomValues.Add(ctx, int64(values), attrs)
	m.rejections.Add(ctx, int64(max(values-picked, 0)), attrs)
	m.poolSize.Record(ctx, int64(poolSize), attrs)
}

// RecordImport records one import.
func (m *Metrics) RecordImport(ctx context.Context, format string, items int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("format", format))
	m.imports.Add(ctx, 1, attrs)
	m.importedRows.Add(ctx, int64(items), attrs)
}
