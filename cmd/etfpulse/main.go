package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ETFPulse/internal/catalog"
	"ETFPulse/internal/collector"
	"ETFPulse/internal/config"
	"ETFPulse/internal/console"
	"ETFPulse/internal/export"
	"ETFPulse/internal/notifier"
	"ETFPulse/internal/report"
	"ETFPulse/internal/scheduler"
	"ETFPulse/internal/selection"
	"ETFPulse/internal/trace"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ETFPulse starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	builder := report.NewBuilder(collector.NewCollector(fetcher))
	cat := catalog.Default()
	sel := selection.NewManager(cat, time.Now)

	// Init snapshot exporter
	var exp export.Exporter
	if cfg.Export.Driver != "" {
		se, err := export.NewSQLExporter(cfg.Export.Driver, cfg.Export.DSN)
		if err != nil {
			log.Printf("[WARN] init %s exporter failed, using noop: %v", cfg.Export.Driver, err)
			exp = export.NewNoopExporter()
		} else {
			exp = se
			log.Printf("[INFO] snapshot export: %s", cfg.Export.Driver)
		}
	} else {
		exp = export.NewNoopExporter()
	}
	defer exp.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !cfg.BotMode() {
		runOnce(ctx, cfg, builder, cat, sel, exp)
		return
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, builder, sel, cat, tn, exp)
	if err := sched.RegisterAll(cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing digest now")
		go sched.RunDigestNow()
	}

	log.Println("[INFO] ETFPulse is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] ETFPulse stopped")
}

// runOnce prints the report for the default selection and writes the
// one-month downloads, then returns.
func runOnce(ctx context.Context, cfg *config.Config, b *report.Builder, cat *catalog.Catalog, sel *selection.Manager, exp export.Exporter) {
	ctx, _ = trace.Start(ctx)
	rep := b.Build(ctx, sel.Current())
	console.NewPrinter(os.Stdout, cat).Print(rep)

	if rep.MonthCloses.Empty() {
		log.Println("[WARN] no data for the last month, skipping downloads")
	} else if paths, err := export.WriteMonthFiles(cfg.Export.CSVDir, rep); err != nil {
		log.Printf("[ERROR] write csv: %v", err)
	} else {
		for _, p := range paths {
			log.Printf("[INFO] wrote %s", p)
		}
	}

	if err := exp.ExportMonth(ctx, rep); err != nil {
		log.Printf("[ERROR] export month snapshot: %v", err)
	}
}
