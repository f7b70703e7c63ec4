package ports

import (
	"context"
	"io"

	"sellerconsole/internal/core/domain/model/metrics"
)

// MetricsExporter renders a snapshot into a downloadable document.
type MetricsExporter interface {
	ContentType() string
	FileExtension() string
	Export(ctx context.Context, snapshot *metrics.Snapshot, w io.Writer) error
}
