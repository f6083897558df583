package model

import "time"

// PricePoint represents one trading-period record.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries holds the chronologically ordered price history for one ticker.
// It is constructed by the collector and never mutated during analysis.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	HasVolume bool
	FetchedAt time.Time
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Closes returns the closing prices in chronological order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
