package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fertroya/cedears-ai-analyzer/internal/analyzer"
	"github.com/fertroya/cedears-ai-analyzer/internal/collector"
	"github.com/fertroya/cedears-ai-analyzer/internal/config"
	"github.com/fertroya/cedears-ai-analyzer/internal/notifier"
	"github.com/fertroya/cedears-ai-analyzer/internal/recorder"
	"github.com/fertroya/cedears-ai-analyzer/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] cedears analyzer starting...")

	// .env is optional; plain environment variables work the same.
	_ = godotenv.Load()

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
	switch cfg.DataSource.Provider {
	case "mock":
		fetcher = &collector.MockFetcher{}
	case "ppi":
		fetcher = collector.NewPPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.DataSource.APISecret, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s, tickers: %v", fetcher.Name(), cfg.Tickers)

	col := collector.NewCollector(fetcher, cfg.Tickers, cfg.DataSource.HistoryDays)

	an := analyzer.New(analyzer.Config{
		RSIPeriod:      cfg.Analysis.RSIPeriod,
		MACDFast:       cfg.Analysis.MACD.Fast,
		MACDSlow:       cfg.Analysis.MACD.Slow,
		MACDSignal:     cfg.Analysis.MACD.Signal,
		MovingAverages: cfg.Analysis.MovingAverages,
	})

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init email notifier
	var en *notifier.EmailNotifier
	if cfg.EmailConfigured() {
		en = notifier.NewEmailNotifier(cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.Sender, cfg.Email.Password, cfg.Email.Recipient)
	} else {
		log.Println("[WARN] email credentials not configured, reports will not be delivered")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, an, en, rec)
	if err := sched.Register(cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing weekly analysis now")
		go sched.RunWeeklyNow()
	}

	log.Println("[INFO] cedears analyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] cedears analyzer stopped")
}
