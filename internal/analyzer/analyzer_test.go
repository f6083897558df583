package analyzer

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

var scenarioCloses = []float64{100, 102, 101, 105, 103, 108, 107, 110, 112, 109,
	111, 115, 113, 116, 118, 117, 120, 119, 122, 125}

func makeSeries(ticker string, closes []float64, volumes []int64) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Open:  c * 0.99,
			High:  c * 1.01,
			Low:   c * 0.98,
			Close: c,
		}
		if volumes != nil {
			points[i].Volume = volumes[i]
		}
	}
	return &model.PriceSeries{
		Ticker:    ticker,
		Points:    points,
		HasVolume: volumes != nil,
		FetchedAt: start,
	}
}

func constVolumes(n int, v int64) []int64 {
	vols := make([]int64, n)
	for i := range vols {
		vols[i] = v
	}
	return vols
}

func TestAnalyze_Scenario(t *testing.T) {
	a := New(Config{})
	snap, err := a.Analyze(makeSeries("AAPL", scenarioCloses, nil))
	require.NoError(t, err)

	require.NotNil(t, snap.CurrentPrice)
	assert.Equal(t, 125.0, *snap.CurrentPrice)

	assert.Equal(t, model.TrendBullish, snap.Trend.Direction)
	assert.Greater(t, snap.Trend.Slope, 0.1)
	assert.InDelta(t, 1.0, snap.Trend.Strength, 0.1)

	// From index 12 (113) to index 19 (125): (125-113)/113*100.
	assert.Equal(t, 10.62, snap.Momentum.SevenDay)
	assert.Equal(t, 2.46, snap.Momentum.OneDay)
	// Horizon longer than the series defaults to 0.
	assert.Equal(t, 0.0, snap.Momentum.ThirtyDay)

	require.NotNil(t, snap.RSI)
	assert.GreaterOrEqual(t, *snap.RSI, 0.0)
	assert.LessOrEqual(t, *snap.RSI, 100.0)

	require.NotNil(t, snap.MACD.Value)
	require.NotNil(t, snap.MACD.Signal)
	require.NotNil(t, snap.MACD.Histogram)

	require.Contains(t, snap.MovingAverages, "MA20")
	require.NotNil(t, snap.MovingAverages["MA20"])
	assert.Equal(t, 111.65, *snap.MovingAverages["MA20"])
	// Windows longer than the series stay undefined, not zero.
	require.Contains(t, snap.MovingAverages, "MA50")
	assert.Nil(t, snap.MovingAverages["MA50"])
	assert.Nil(t, snap.MovingAverages["MA200"])

	require.NotNil(t, snap.SupportResistance.Support)
	require.NotNil(t, snap.SupportResistance.Resistance)
	assert.Equal(t, 100.0, *snap.SupportResistance.Support)
	assert.Equal(t, 125.0, *snap.SupportResistance.Resistance)
	require.NotNil(t, snap.SupportResistance.CurrentPrice)
	assert.Equal(t, 125.0, *snap.SupportResistance.CurrentPrice)

	// No volume data on this series.
	assert.Nil(t, snap.Volume.Average)
	assert.Equal(t, model.VolumeUnknown, snap.Volume.Trend)
}

func TestAnalyze_InsufficientData(t *testing.T) {
	a := New(Config{})
	snap, err := a.Analyze(makeSeries("KO", []float64{100, 101, 102, 103, 104}, constVolumes(5, 1000)))
	require.NoError(t, err)

	assert.Nil(t, snap.CurrentPrice)
	assert.Nil(t, snap.RSI)
	assert.Nil(t, snap.MACD.Value)
	assert.Nil(t, snap.MACD.Signal)
	assert.Nil(t, snap.MACD.Histogram)
	assert.Empty(t, snap.MovingAverages)

	assert.Equal(t, model.TrendInsufficientData, snap.Trend.Direction)
	assert.Equal(t, 0.0, snap.Trend.Strength)

	assert.Nil(t, snap.SupportResistance.Support)
	assert.Nil(t, snap.SupportResistance.Resistance)

	// Short-horizon momentum falls back to 0, deliberately distinct from
	// the nil markers above.
	assert.Equal(t, 0.0, snap.Momentum.OneDay)
	assert.Equal(t, 0.0, snap.Momentum.SevenDay)
	assert.Equal(t, 0.0, snap.Momentum.ThirtyDay)

	assert.Nil(t, snap.Volume.Average)
	assert.Equal(t, model.VolumeUnknown, snap.Volume.Trend)
}

func TestAnalyze_VolumeTrend(t *testing.T) {
	a := New(Config{})

	// Recent average above the series average.
	vols := constVolumes(20, 1000)
	for i := 15; i < 20; i++ {
		vols[i] = 5000
	}
	snap, err := a.Analyze(makeSeries("MSFT", scenarioCloses, vols))
	require.NoError(t, err)
	assert.Equal(t, model.VolumeIncreasing, snap.Volume.Trend)
	require.NotNil(t, snap.Volume.Average)
	require.NotNil(t, snap.Volume.RecentAverage)
	assert.Equal(t, 2000.0, *snap.Volume.Average)
	assert.Equal(t, 5000.0, *snap.Volume.RecentAverage)

	// Equal averages resolve to decreasing.
	snap, err = a.Analyze(makeSeries("MSFT", scenarioCloses, constVolumes(20, 1000)))
	require.NoError(t, err)
	assert.Equal(t, model.VolumeDecreasing, snap.Volume.Trend)
}

func TestAnalyze_MalformedSeries(t *testing.T) {
	a := New(Config{})
	base := makeSeries("GGAL", scenarioCloses, nil)

	tests := []struct {
		name   string
		mutate func(s *model.PriceSeries)
	}{
		{"duplicate date", func(s *model.PriceSeries) { s.Points[5].Date = s.Points[4].Date }},
		{"out of order date", func(s *model.PriceSeries) { s.Points[5].Date = s.Points[4].Date.AddDate(0, 0, -3) }},
		{"negative price", func(s *model.PriceSeries) { s.Points[3].Close = -10 }},
		{"zero price", func(s *model.PriceSeries) { s.Points[3].Open = 0 }},
		{"negative volume", func(s *model.PriceSeries) { s.Points[3].Volume = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := makeSeries(base.Ticker, scenarioCloses, constVolumes(len(scenarioCloses), 100))
			tt.mutate(series)

			_, err := a.Analyze(series)
			require.Error(t, err)
			var serr *model.SeriesError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, "GGAL", serr.Ticker)
		})
	}
}

func TestAnalyze_MissingTicker(t *testing.T) {
	a := New(Config{})
	_, err := a.Analyze(&model.PriceSeries{})
	require.Error(t, err)
	var serr *model.SeriesError
	require.True(t, errors.As(err, &serr))
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := New(Config{})
	a.now = func() time.Time { return time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC) }

	series := makeSeries("MELI", scenarioCloses, constVolumes(20, 1000))
	first, err := a.Analyze(series)
	require.NoError(t, err)
	second, err := a.Analyze(series)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestConfig_Normalization(t *testing.T) {
	// Out-of-range values fall back to defaults rather than failing.
	a := New(Config{
		RSIPeriod:      -3,
		MACDFast:       26,
		MACDSlow:       12,
		MACDSignal:     9,
		MovingAverages: []int{0, -5},
	})
	assert.Equal(t, DefaultRSIPeriod, a.cfg.RSIPeriod)
	assert.Equal(t, DefaultMACDFast, a.cfg.MACDFast)
	assert.Equal(t, DefaultMACDSlow, a.cfg.MACDSlow)
	assert.Equal(t, DefaultMACDSignal, a.cfg.MACDSignal)
	assert.Equal(t, DefaultMovingAverages, a.cfg.MovingAverages)
}

func TestAnalyze_CustomMovingAverages(t *testing.T) {
	a := New(Config{MovingAverages: []int{5}})
	snap, err := a.Analyze(makeSeries("AAPL", scenarioCloses, nil))
	require.NoError(t, err)

	require.Contains(t, snap.MovingAverages, "MA5")
	require.NotNil(t, snap.MovingAverages["MA5"])
	// Mean of the last five closes: 117, 120, 119, 122, 125.
	assert.Equal(t, 120.6, *snap.MovingAverages["MA5"])
	assert.NotContains(t, snap.MovingAverages, "MA20")
}
