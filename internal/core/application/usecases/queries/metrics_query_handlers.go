package queries

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/metrics"
	"sellerconsole/internal/core/domain/services"
	"sellerconsole/internal/core/ports"
)

// ComputeMetricsQueryHandler loads the orders of the current and previous
// windows and hands them to the aggregator. Nothing is cached.
type ComputeMetricsQueryHandler struct {
	orders     OrderReader
	aggregator services.MetricsAggregator
	clock      kernel.Clock
}

func NewComputeMetricsQueryHandler(
	orders OrderReader,
	aggregator services.MetricsAggregator,
	clock kernel.Clock,
) ComputeMetricsQueryHandler {
	return ComputeMetricsQueryHandler{orders: orders, aggregator: aggregator, clock: clock}
}

func (h ComputeMetricsQueryHandler) Handle(ctx context.Context, query ComputeMetricsQuery) (*metrics.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	window := time.Duration(query.WindowDays()) * 24 * time.Hour
	since := now.Add(-2 * window)

	orders, err := h.orders.ListCreatedSince(ctx, query.SellerID(), since)
	if err != nil {
		return nil, err
	}

	return h.aggregator.Compute(ctx, query.SellerID(), orders, now, query.WindowDays())
}

// ExportedMetrics is a rendered metrics document ready for download.
type ExportedMetrics struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportMetricsQueryHandler computes a snapshot and renders it with exporter.
type ExportMetricsQueryHandler struct {
	compute  ComputeMetricsQueryHandler
	exporter ports.MetricsExporter
}

func NewExportMetricsQueryHandler(
	compute ComputeMetricsQueryHandler,
	exporter ports.MetricsExporter,
) ExportMetricsQueryHandler {
	return ExportMetricsQueryHandler{compute: compute, exporter: exporter}
}

func (h ExportMetricsQueryHandler) Handle(ctx context.Context, query ComputeMetricsQuery) (*ExportedMetrics, error) {
	snapshot, err := h.compute.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = h.exporter.Export(ctx, snapshot, &buf); err != nil {
		return nil, err
	}

	return &ExportedMetrics{
		FileName: fmt.Sprintf("metrics-%s-%dd-%s.%s",
			query.SellerID().String()[:8],
			query.WindowDays(),
			snapshot.WindowEnd.Format("20060102"),
			h.exporter.FileExtension(),
		),
		ContentType: h.exporter.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}
