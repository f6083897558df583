package model

import "time"

// TrendDirection classifies the fitted price trend.
type TrendDirection string

const (
	TrendBullish          TrendDirection = "bullish"
	TrendBearish          TrendDirection = "bearish"
	TrendSideways         TrendDirection = "sideways"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// VolumeTrend classifies recent trading volume against the series average.
type VolumeTrend string

const (
	VolumeIncreasing VolumeTrend = "increasing"
	VolumeDecreasing VolumeTrend = "decreasing"
	VolumeUnknown    VolumeTrend = "unknown"
)

// MACDSummary holds the latest MACD triple. Nil fields mean undefined.
type MACDSummary struct {
	Value     *float64 `json:"value"`
	Signal    *float64 `json:"signal"`
	Histogram *float64 `json:"histogram"`
}

// TrendAssessment describes the direction, strength, and slope of the
// least-squares price trend. Slope is in price units per period.
type TrendAssessment struct {
	Direction TrendDirection `json:"direction"`
	Strength  float64        `json:"strength"`
	Slope     float64        `json:"slope"`
}

// SupportResistance holds the derived support and resistance levels. They are
// global rolling extremes and do not necessarily bracket the current price.
type SupportResistance struct {
	Support      *float64 `json:"support"`
	Resistance   *float64 `json:"resistance"`
	CurrentPrice *float64 `json:"current_price"`
}

// Momentum holds percent price changes over fixed look-back horizons.
// A horizon longer than the series defaults to 0, not undefined.
type Momentum struct {
	OneDay    float64 `json:"1d"`
	SevenDay  float64 `json:"7d"`
	ThirtyDay float64 `json:"30d"`
}

// VolumeAssessment summarizes trading volume pressure.
type VolumeAssessment struct {
	Average       *float64    `json:"average"`
	RecentAverage *float64    `json:"recent_average"`
	Trend         VolumeTrend `json:"trend"`
}

// BollingerSummary holds the latest Bollinger band values.
type BollingerSummary struct {
	Upper  *float64 `json:"upper"`
	Middle *float64 `json:"middle"`
	Lower  *float64 `json:"lower"`
}

// AnalysisSnapshot is the complete technical analysis result for one ticker
// at one point in time. Optional numeric fields are nil when there is not
// enough data to compute them, never a stand-in zero.
type AnalysisSnapshot struct {
	Ticker            string              `json:"ticker"`
	CurrentPrice      *float64            `json:"current_price"`
	RSI               *float64            `json:"rsi"`
	MACD              MACDSummary         `json:"macd"`
	MovingAverages    map[string]*float64 `json:"moving_averages"`
	Trend             TrendAssessment     `json:"trend"`
	SupportResistance SupportResistance   `json:"support_resistance"`
	Momentum          Momentum            `json:"momentum"`
	Volume            VolumeAssessment    `json:"volume"`
	Bollinger         BollingerSummary    `json:"bollinger"`
	GeneratedAt       time.Time           `json:"timestamp"`
}
