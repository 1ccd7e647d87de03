package export

import (
	"context"

	"ETFPulse/internal/model"
)

// Exporter mirrors the current one-month tables somewhere external.
// Each call replaces what the previous call wrote.
type Exporter interface {
	ExportMonth(ctx context.Context, rep *model.Report) error
	Close() error
}

// NoopExporter is used when no export target is configured.
type NoopExporter struct{}

func NewNoopExporter() *NoopExporter { return &NoopExporter{} }

func (n *NoopExporter) ExportMonth(_ context.Context, _ *model.Report) error { return nil }
func (n *NoopExporter) Close() error                                         { return nil }
