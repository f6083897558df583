package collector

import (
	"fmt"
	"time"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Points map[string][]model.PricePoint // per-ticker override
	Base   float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(ticker string, days int) ([]model.PricePoint, error) {
	if pts, ok := m.Points[ticker]; ok {
		return pts, nil
	}
	base := m.Base
	if base == 0 {
		base = 1000
	}
	return generateMockPoints(base, days), nil
}

func generateMockPoints(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 50000 + int64(i)*100,
		}
	}
	return points
}

// Collector orchestrates per-ticker data fetching.
type Collector struct {
	Fetcher     Fetcher
	Tickers     []string
	HistoryDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, tickers []string, historyDays int) *Collector {
	return &Collector{Fetcher: fetcher, Tickers: tickers, HistoryDays: historyDays}
}

// Collect fetches the price history for one ticker and assembles the series
// handed to the analyzer. The series is immutable from here on.
func (c *Collector) Collect(ticker string) (*model.PriceSeries, error) {
	points, err := c.Fetcher.FetchDailyHistory(ticker, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", ticker, err)
	}

	hasVolume := false
	for _, p := range points {
		if p.Volume > 0 {
			hasVolume = true
			break
		}
	}

	return &model.PriceSeries{
		Ticker:    ticker,
		Points:    points,
		HasVolume: hasVolume,
		FetchedAt: time.Now(),
	}, nil
}
