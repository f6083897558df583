package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

// SQLiteRecorder persists analysis snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the analyzer writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			current_price   REAL,
			rsi             REAL,
			macd            REAL,
			macd_signal     REAL,
			macd_histogram  REAL,
			moving_averages TEXT,
			trend_direction TEXT,
			trend_strength  REAL,
			trend_slope     REAL,
			support         REAL,
			resistance      REAL,
			momentum_1d     REAL,
			momentum_7d     REAL,
			momentum_30d    REAL,
			volume_avg      REAL,
			volume_recent   REAL,
			volume_trend    TEXT,
			boll_upper      REAL,
			boll_middle     REAL,
			boll_lower      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ticker ON snapshots(ticker, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSnapshot inserts one row per snapshot. Undefined values are stored
// as NULL. The moving averages map is stored as a JSON blob since its keys
// depend on configuration.
func (r *SQLiteRecorder) RecordSnapshot(snap *model.AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mas, err := json.Marshal(snap.MovingAverages)
	if err != nil {
		return fmt.Errorf("marshal moving averages: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO snapshots
		(timestamp, ticker, current_price, rsi, macd, macd_signal, macd_histogram,
		 moving_averages, trend_direction, trend_strength, trend_slope,
		 support, resistance, momentum_1d, momentum_7d, momentum_30d,
		 volume_avg, volume_recent, volume_trend,
		 boll_upper, boll_middle, boll_lower)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.GeneratedAt.Unix(), snap.Ticker, snap.CurrentPrice,
		snap.RSI, snap.MACD.Value, snap.MACD.Signal, snap.MACD.Histogram,
		string(mas), string(snap.Trend.Direction), snap.Trend.Strength, snap.Trend.Slope,
		snap.SupportResistance.Support, snap.SupportResistance.Resistance,
		snap.Momentum.OneDay, snap.Momentum.SevenDay, snap.Momentum.ThirtyDay,
		snap.Volume.Average, snap.Volume.RecentAverage, string(snap.Volume.Trend),
		snap.Bollinger.Upper, snap.Bollinger.Middle, snap.Bollinger.Lower,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
