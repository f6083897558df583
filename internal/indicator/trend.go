package indicator

import (
	"math"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

// Slope thresholds are absolute price units per period, not normalized to
// the instrument's price level.
const (
	bullishSlope = 0.1
	bearishSlope = -0.1
)

// Trend fits an ordinary least-squares line of closing price against the
// period index (0..n-1) and classifies the direction by the fitted slope.
// Strength is the absolute Pearson correlation between index and price.
// Series shorter than MinPoints report insufficient_data with strength 0.
func Trend(closes []float64) model.TrendAssessment {
	if len(closes) < MinPoints {
		return model.TrendAssessment{Direction: model.TrendInsufficientData}
	}

	n := float64(len(closes))
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i, y := range closes {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}
	varX := n*sumXX - sumX*sumX
	varY := n*sumYY - sumY*sumY
	cov := n*sumXY - sumX*sumY

	// A flat series has undefined correlation; treat it as a zero-strength
	// sideways trend rather than propagating NaN.
	slope := 0.0
	strength := 0.0
	if varY > 0 {
		slope = cov / varX
		strength = math.Abs(cov / math.Sqrt(varX*varY))
		if strength > 1 {
			strength = 1
		}
	}

	direction := model.TrendSideways
	switch {
	case slope > bullishSlope:
		direction = model.TrendBullish
	case slope < bearishSlope:
		direction = model.TrendBearish
	}
	return model.TrendAssessment{Direction: direction, Strength: strength, Slope: slope}
}
