package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fertroya/cedears-ai-analyzer/internal/analyzer"
	"github.com/fertroya/cedears-ai-analyzer/internal/collector"
	"github.com/fertroya/cedears-ai-analyzer/internal/model"
	"github.com/fertroya/cedears-ai-analyzer/internal/notifier"
	"github.com/fertroya/cedears-ai-analyzer/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron-driven analysis runs.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Analyzer  *analyzer.Analyzer
	Notifier  *notifier.EmailNotifier // nil when email is not configured
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, an *analyzer.Analyzer, en *notifier.EmailNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Analyzer:  an,
		Notifier:  en,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// Register registers the weekly analysis task.
func (s *Scheduler) Register(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
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
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWeeklyNow executes the weekly task immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyTask()
}

// weeklyTask analyzes every configured ticker and delivers the report. A
// failure on one ticker never blocks the rest of the run.
func (s *Scheduler) weeklyTask() {
	log.Printf("[INFO] running weekly analysis for %d tickers", len(s.Collector.Tickers))

	var snapshots []*model.AnalysisSnapshot
	var failures []string

	for _, ticker := range s.Collector.Tickers {
		series, err := s.Collector.Collect(ticker)
		if err != nil {
			log.Printf("[ERROR] collect %s: %v", ticker, err)
			failures = append(failures, ticker)
			continue
		}

		snap, err := s.Analyzer.Analyze(series)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", ticker, err)
			failures = append(failures, ticker)
			continue
		}
		if snap.Trend.Direction == model.TrendInsufficientData {
			log.Printf("[WARN] insufficient data for %s (%d points)", ticker, series.Len())
		}
		snapshots = append(snapshots, snap)

		if err := s.Recorder.RecordSnapshot(snap); err != nil {
			log.Printf("[ERROR] record snapshot for %s: %v", ticker, err)
		}
	}

	if len(snapshots) == 0 {
		log.Println("[ERROR] weekly run produced no snapshots, skipping report")
		return
	}

	report, err := notifier.FormatWeeklyReport(snapshots, failures)
	if err != nil {
		log.Printf("[ERROR] format report: %v", err)
		return
	}

	if s.Notifier == nil {
		log.Println("[WARN] email not configured, skipping report delivery")
		return
	}
	subject := notifier.ReportSubject(time.Now())
	if err := s.Notifier.SendWithRetry(s.Ctx, subject, report, 3); err != nil {
		log.Printf("[ERROR] send report: %v", err)
	}
}
