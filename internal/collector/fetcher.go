package collector

import "github.com/fertroya/cedears-ai-analyzer/internal/model"

// Fetcher defines the interface for fetching historical price data. The
// returned points must be chronologically ordered with unique dates.
type Fetcher interface {
	FetchDailyHistory(ticker string, days int) ([]model.PricePoint, error)
	Name() string
}
