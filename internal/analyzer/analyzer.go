// Package analyzer turns one instrument's price history into a structured
// technical analysis snapshot. It is the aggregation layer over the
// indicator package: it applies the data-sufficiency policy, reduces each
// derived series to its latest value, and rounds the results.
package analyzer

import (
	"fmt"
	"math"
	"time"

	"github.com/fertroya/cedears-ai-analyzer/internal/indicator"
	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

// Defaults applied when the configured parameters are out of range.
const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// DefaultMovingAverages are the simple moving average windows used when none
// are configured.
var DefaultMovingAverages = []int{20, 50, 200}

const (
	bollingerWindow    = 20
	bollingerStdDev    = 2.0
	recentVolumeWindow = 5
)

// Config holds the tunable indicator parameters. Zero or out-of-range values
// fall back to the documented defaults rather than failing.
type Config struct {
	RSIPeriod      int
	MACDFast       int
	MACDSlow       int
	MACDSignal     int
	MovingAverages []int
}

func (c Config) normalized() Config {
	if c.RSIPeriod <= 0 {
		c.RSIPeriod = DefaultRSIPeriod
	}
	if c.MACDFast <= 0 || c.MACDSlow <= 0 || c.MACDSignal <= 0 || c.MACDFast >= c.MACDSlow {
		c.MACDFast = DefaultMACDFast
		c.MACDSlow = DefaultMACDSlow
		c.MACDSignal = DefaultMACDSignal
	}
	windows := make([]int, 0, len(c.MovingAverages))
	for _, w := range c.MovingAverages {
		if w > 0 {
			windows = append(windows, w)
		}
	}
	if len(windows) == 0 {
		windows = append(windows, DefaultMovingAverages...)
	}
	c.MovingAverages = windows
	return c
}

// Analyzer computes analysis snapshots. It holds no mutable state: one
// instance may be shared across tickers and goroutines.
type Analyzer struct {
	cfg Config
	now func() time.Time
}

// New creates an Analyzer with the given configuration, normalized to the
// documented defaults where out of range.
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg.normalized(), now: time.Now}
}

// Analyze produces exactly one snapshot for the given series. Series shorter
// than indicator.MinPoints yield the documented fallback snapshot, not an
// error. Structurally invalid series are rejected with a *model.SeriesError.
func (a *Analyzer) Analyze(series *model.PriceSeries) (*model.AnalysisSnapshot, error) {
	if err := validate(series); err != nil {
		return nil, err
	}
	if series.Len() < indicator.MinPoints {
		return a.emptySnapshot(series.Ticker), nil
	}

	closes := series.Closes()
	current := closes[len(closes)-1]

	snap := &model.AnalysisSnapshot{
		Ticker:         series.Ticker,
		CurrentPrice:   roundPtr(current, 2),
		MovingAverages: make(map[string]*float64, len(a.cfg.MovingAverages)),
		GeneratedAt:    a.now(),
	}

	snap.RSI = roundPtr(last(indicator.RSI(closes, a.cfg.RSIPeriod)), 2)

	macdLine, macdSignal, macdHist := indicator.MACD(closes, a.cfg.MACDFast, a.cfg.MACDSlow, a.cfg.MACDSignal)
	snap.MACD = model.MACDSummary{
		Value:     roundPtr(last(macdLine), 2),
		Signal:    roundPtr(last(macdSignal), 2),
		Histogram: roundPtr(last(macdHist), 2),
	}

	for _, w := range a.cfg.MovingAverages {
		snap.MovingAverages[fmt.Sprintf("MA%d", w)] = roundPtr(last(indicator.SMA(closes, w)), 2)
	}

	trend := indicator.Trend(closes)
	trend.Strength = round(trend.Strength, 3)
	trend.Slope = round(trend.Slope, 4)
	snap.Trend = trend

	if support, resistance, ok := indicator.SupportResistance(closes); ok {
		snap.SupportResistance = model.SupportResistance{
			Support:      roundPtr(support, 2),
			Resistance:   roundPtr(resistance, 2),
			CurrentPrice: roundPtr(current, 2),
		}
	}

	upper, middle, lower := indicator.Bollinger(closes, bollingerWindow, bollingerStdDev)
	snap.Bollinger = model.BollingerSummary{
		Upper:  roundPtr(last(upper), 2),
		Middle: roundPtr(last(middle), 2),
		Lower:  roundPtr(last(lower), 2),
	}

	snap.Momentum = model.Momentum{
		OneDay:    momentum(closes, 1),
		SevenDay:  momentum(closes, 7),
		ThirtyDay: momentum(closes, 30),
	}

	snap.Volume = volumeAssessment(series)
	return snap, nil
}

// emptySnapshot is the fallback for series with insufficient data. This is a
// data state, not a failure.
func (a *Analyzer) emptySnapshot(ticker string) *model.AnalysisSnapshot {
	return &model.AnalysisSnapshot{
		Ticker:         ticker,
		MovingAverages: map[string]*float64{},
		Trend:          model.TrendAssessment{Direction: model.TrendInsufficientData},
		Volume:         model.VolumeAssessment{Trend: model.VolumeUnknown},
		GeneratedAt:    a.now(),
	}
}

// momentum is the percent price change over the last d periods. Series
// shorter than d+1 points fall back to 0; this is deliberately distinct from
// the nil marker used for indicators with insufficient history.
func momentum(closes []float64, d int) float64 {
	if len(closes) < d+1 {
		return 0
	}
	prev := closes[len(closes)-1-d]
	return round((closes[len(closes)-1]-prev)/prev*100, 2)
}

func volumeAssessment(series *model.PriceSeries) model.VolumeAssessment {
	if !series.HasVolume {
		return model.VolumeAssessment{Trend: model.VolumeUnknown}
	}

	var total float64
	for _, p := range series.Points {
		total += float64(p.Volume)
	}
	avg := total / float64(series.Len())

	start := series.Len() - recentVolumeWindow
	if start < 0 {
		start = 0
	}
	var recentTotal float64
	for _, p := range series.Points[start:] {
		recentTotal += float64(p.Volume)
	}
	recent := recentTotal / float64(series.Len()-start)

	// Ties resolve to decreasing.
	trend := model.VolumeDecreasing
	if recent > avg {
		trend = model.VolumeIncreasing
	}
	return model.VolumeAssessment{
		Average:       roundPtr(avg, 0),
		RecentAverage: roundPtr(recent, 0),
		Trend:         trend,
	}
}

// validate rejects structurally invalid series. The collector guarantees
// ordering and positive prices, so a violation here is a hard error for the
// ticker rather than a data-sufficiency fallback.
func validate(series *model.PriceSeries) error {
	if series == nil || series.Ticker == "" {
		return &model.SeriesError{Reason: "missing ticker"}
	}
	for i, p := range series.Points {
		if p.Open <= 0 || p.High <= 0 || p.Low <= 0 || p.Close <= 0 {
			return &model.SeriesError{
				Ticker: series.Ticker,
				Reason: fmt.Sprintf("non-positive price at %s", p.Date.Format("2006-01-02")),
			}
		}
		if p.Volume < 0 {
			return &model.SeriesError{
				Ticker: series.Ticker,
				Reason: fmt.Sprintf("negative volume at %s", p.Date.Format("2006-01-02")),
			}
		}
		if i > 0 && !series.Points[i-1].Date.Before(p.Date) {
			return &model.SeriesError{
				Ticker: series.Ticker,
				Reason: fmt.Sprintf("dates not strictly increasing at %s", p.Date.Format("2006-01-02")),
			}
		}
	}
	return nil
}

// last reduces a derived series to its most recent value; NaN when the
// series is empty or entirely undefined at the tail.
func last(s []float64) float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// roundPtr rounds v to the given number of decimals, or returns nil for NaN
// and infinities so undefined values serialize as null.
func roundPtr(v float64, decimals int) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := round(v, decimals)
	return &r
}
