package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"ETFPulse/internal/catalog"
	"ETFPulse/internal/export"
	"ETFPulse/internal/model"
	"ETFPulse/internal/notifier"
	"ETFPulse/internal/report"
	"ETFPulse/internal/selection"
	"ETFPulse/internal/trace"
)

// Sink receives rendered messages and files.
type Sink interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
	SendDocumentWithRetry(ctx context.Context, filename string, data []byte, caption string, maxRetries int) error
}

const sendRetries = 3

// Scheduler runs the digest job and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Builder   *report.Builder
	Selection *selection.Manager
	Catalog   *catalog.Catalog
	Notifier  Sink
	Exporter  export.Exporter
	Location  *time.Location
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, b *report.Builder, sel *selection.Manager, cat *catalog.Catalog, n Sink, exp export.Exporter) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Builder:   b,
		Selection: sel,
		Catalog:   cat,
		Notifier:  n,
		Exporter:  exp,
		Location:  time.Local,
		Ctx:       ctx,
	}
}

// RegisterAll registers the digest task.
func (s *Scheduler) RegisterAll(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest task immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running digest task")
	s.pushReport(s.Ctx)
}

// pushReport recomputes the report for the current selection, sends it and
// refreshes the snapshot export.
func (s *Scheduler) pushReport(ctx context.Context) *model.Report {
	ctx, _ = trace.Start(ctx)
	rep := s.Builder.Build(ctx, s.Selection.Current())
	for _, msg := range notifier.FormatReport(s.Catalog, rep) {
		s.trySend(ctx, msg)
	}
	if err := s.Exporter.ExportMonth(ctx, rep); err != nil {
		trace.Logf(ctx, "[ERROR] export month snapshot: %v", err)
	}
	return rep
}

func (s *Scheduler) sendCSV(ctx context.Context) {
	ctx, _ = trace.Start(ctx)
	rep := s.Builder.Build(ctx, s.Selection.Current())
	if rep.MonthCloses.Empty() {
		s.trySend(ctx, "近一個月無資料可下載")
		return
	}
	files, err := export.MonthFiles(rep)
	if err != nil {
		trace.Logf(ctx, "[ERROR] encode csv: %v", err)
		s.trySend(ctx, fmt.Sprintf("❌ 產生 CSV 失敗: %v", err))
		return
	}
	captions := map[string]string{
		export.MonthCloseFile:  "近一個月收盤價 (CSV)",
		export.MonthVolumeFile: "近一個月成交量 (CSV)",
	}
	for _, name := range []string{export.MonthCloseFile, export.MonthVolumeFile} {
		if err := s.Notifier.SendDocumentWithRetry(ctx, name, files[name], captions[name], sendRetries); err != nil {
			trace.Logf(ctx, "[ERROR] upload %s: %v", name, err)
		}
	}
}

const helpText = `可用命令:
• /report 查看ETF近期表現
• /etfs 0050.TW 0056.TW 選擇ETF
• /range 2026-01-01 2026-01-31 設定自訂區間
• /reset 回復預設選擇
• /csv 下載近一個月收盤價與成交量
• /list 查看可選ETF`

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "/report", "/start":
		s.pushReport(ctx)
		return ""
	case "/etfs":
		if err := s.Selection.SetSymbols(args); err != nil {
			return selectionError(err)
		}
		s.pushReport(ctx)
		return ""
	case "/range":
		if len(args) != 2 {
			return "用法: /range 開始日期 結束日期（YYYY-MM-DD）"
		}
		start, err := selection.ParseDate(args[0], s.Location)
		if err != nil {
			return "❌ 日期格式錯誤，請使用 YYYY-MM-DD"
		}
		end, err := selection.ParseDate(args[1], s.Location)
		if err != nil {
			return "❌ 日期格式錯誤，請使用 YYYY-MM-DD"
		}
		if err := s.Selection.SetCustomRange(start, end); err != nil {
			return selectionError(err)
		}
		s.pushReport(ctx)
		return ""
	case "/reset":
		s.Selection.Reset()
		return notifier.FormatCatalog(s.Catalog, s.Selection.Current())
	case "/csv":
		s.sendCSV(ctx)
		return ""
	case "/list":
		return notifier.FormatCatalog(s.Catalog, s.Selection.Current())
	default:
		return helpText
	}
}

func selectionError(err error) string {
	switch {
	case errors.Is(err, selection.ErrUnknownSymbol):
		return fmt.Sprintf("❌ %v\n輸入 /list 查看可選ETF", err)
	case errors.Is(err, selection.ErrEmptySelection):
		return "❌ 請至少選擇一檔ETF，例如 /etfs 0050.TW 0056.TW"
	case errors.Is(err, selection.ErrInvalidRange):
		return "❌ 開始日期必須早於結束日期"
	default:
		return fmt.Sprintf("❌ %v", err)
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if err := s.Notifier.SendWithRetry(ctx, text, sendRetries); err != nil {
		trace.Logf(ctx, "[ERROR] send notification: %v", err)
	}
}
