// Package report turns a selection into the full set of window tables,
// rankings and advice. Every call recomputes from scratch.
package report

import (
	"context"
	"time"

	"ETFPulse/internal/calculator"
	"ETFPulse/internal/collector"
	"ETFPulse/internal/model"
	"ETFPulse/internal/selection"
	"ETFPulse/internal/strategy"
	"ETFPulse/internal/trace"
)

// Builder orchestrates fetching and computation for one report pass.
type Builder struct {
	Collector *collector.Collector
	Now       func() time.Time
}

// NewBuilder creates a new Builder.
func NewBuilder(col *collector.Collector) *Builder {
	return &Builder{Collector: col, Now: time.Now}
}

// BuildWindow summarizes and ranks one window. Both tables must come from
// the same slice of the same data.
func BuildWindow(kind model.WindowKind, closes, volumes *model.Table) model.WindowReport {
	summary := calculator.Summarize(closes)
	return model.WindowReport{
		Kind:    kind,
		Closes:  closes,
		Volumes: volumes,
		Summary: summary,
		Ranking: calculator.RankDescending(summary),
	}
}

// Build fetches data for sel and assembles the report.
func (b *Builder) Build(ctx context.Context, sel model.Selection) *model.Report {
	ctx, runID := trace.Start(ctx)
	now := b.Now()
	trace.Logf(ctx, "[INFO] building report for %v", sel.Symbols)

	rep := &model.Report{
		RunID:       runID,
		GeneratedAt: now,
		Selection:   sel,
	}

	// Custom range is fetched independently of the one-month data.
	custom := b.Collector.Collect(ctx, sel.Symbols, sel.CustomStart, sel.CustomEnd)
	if collector.AnyData(custom) {
		rep.Windows = append(rep.Windows, BuildWindow(model.WindowCustom,
			calculator.BuildTable(custom, calculator.Close),
			calculator.BuildTable(custom, calculator.Volume)))
	} else {
		rep.CustomEmpty = true
		trace.Logf(ctx, "[INFO] custom range %s..%s has no data for any symbol",
			sel.CustomStart.Format("2006-01-02"), sel.CustomEnd.Format("2006-01-02"))
	}

	start, end := selection.DefaultRange(now)
	month := b.Collector.Collect(ctx, sel.Symbols, start, end)
	closes := calculator.BuildTable(month, calculator.Close)
	volumes := calculator.BuildTable(month, calculator.Volume)
	rep.MonthCloses = closes
	rep.MonthVolumes = volumes

	cm, c7, c3 := calculator.Windows(closes)
	vm, v7, v3 := calculator.Windows(volumes)
	rep.Windows = append(rep.Windows,
		BuildWindow(model.WindowMonth, cm, vm),
		BuildWindow(model.Window7D, c7, v7),
		BuildWindow(model.Window3D, c3, v3),
	)

	monthWin, _ := rep.Window(model.WindowMonth)
	rep.MonthSummary = monthWin.Summary
	if best, worst, ok := calculator.Extreme(rep.MonthSummary); ok {
		rep.Best, rep.Worst = &best, &worst
	}
	rep.Advice = strategy.AdviseAll(rep.MonthSummary)

	trace.Logf(ctx, "[INFO] report ready: %d symbols with data, %d windows", len(rep.MonthSummary), len(rep.Windows))
	return rep
}
