package collector

import (
	"testing"
	"time"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

func TestCollect_VolumeDetection(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	withVolume := make([]model.PricePoint, 3)
	withoutVolume := make([]model.PricePoint, 3)
	for i := range withVolume {
		p := model.PricePoint{
			Date: start.AddDate(0, 0, i),
			Open: 100, High: 101, Low: 99, Close: 100,
		}
		withoutVolume[i] = p
		p.Volume = 12000
		withVolume[i] = p
	}

	fetcher := &MockFetcher{Points: map[string][]model.PricePoint{
		"AAPL": withVolume,
		"KO":   withoutVolume,
	}}
	col := NewCollector(fetcher, []string{"AAPL", "KO"}, 300)

	series, err := col.Collect("AAPL")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if !series.HasVolume {
		t.Error("expected HasVolume for series with volume data")
	}
	if series.Ticker != "AAPL" {
		t.Errorf("expected ticker AAPL, got %q", series.Ticker)
	}

	series, err = col.Collect("KO")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if series.HasVolume {
		t.Error("expected HasVolume=false for series without volume data")
	}
}

func TestMockFetcher_GeneratedSeries(t *testing.T) {
	fetcher := &MockFetcher{Base: 2000}
	points, err := fetcher.FetchDailyHistory("MELI", 30)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Date.Before(points[i].Date) {
			t.Fatalf("dates not strictly increasing at %d", i)
		}
	}
}
