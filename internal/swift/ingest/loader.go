package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"swiftindex/internal/audit"
	"swiftindex/internal/platform/metrics"
	"swiftindex/internal/swift"
)

// Ingestion failure classes. Both are fatal at startup; ErrParse means
// nothing was written, ErrBulkApply means the store may be partially updated.
var (
	ErrParse     = errors.New("dataset parse failed")
	ErrBulkApply = errors.New("dataset bulk apply failed")
)

// Loader runs the startup bulk load.
type Loader struct {
	store   swift.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	timeout time.Duration
}

// NewLoader creates a loader. timeout bounds the bulk apply step.
func NewLoader(store swift.Store, logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher, timeout time.Duration) *Loader {
	return &Loader{store: store, logger: logger, metrics: m, audit: auditor, timeout: timeout}
}

// LoadFile runs Load against a file on disk.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		l.logger.ErrorContext(ctx, "dataset unreadable", "source", path, "error", err)
		return 0, fmt.Errorf("%w: open %s: %w", ErrParse, path, err)
	}
	defer f.Close()
	return l.Load(ctx, f, path)
}

// Load parses the dataset and upserts every record keyed by swift code.
// The upsert makes the load idempotent: re-running it over the same dataset
// leaves the store unchanged.
func (l *Loader) Load(ctx context.Context, r io.Reader, source string) (int, error) {
	rows, err := Parse(r)
	if err != nil {
		l.logger.ErrorContext(ctx, "dataset parse failed", "source", source, "error", err)
		return 0, fmt.Errorf("%w: %s: %w", ErrParse, source, err)
	}

	records := make([]swift.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToRecord())
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	if err := l.store.UpsertBatch(ctx, records); err != nil {
		l.logger.ErrorContext(ctx, "dataset bulk apply failed", "source", source, "records", len(records), "error", err)
		return 0, fmt.Errorf("%w: %s: %w", ErrBulkApply, source, err)
	}

	l.metrics.AddIngested(len(records))
	l.logger.InfoContext(ctx, "dataset loaded",
		"source", source,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	event := audit.NewEvent(audit.ActionIngest)
	event.Count = len(records)
	l.audit.Emit(ctx, event)

	return len(records), nil
}
