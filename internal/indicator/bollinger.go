package indicator

import "math"

// Bollinger computes Bollinger Bands: a middle simple moving average with
// upper and lower bands offset by stdDev rolling sample standard deviations
// of the same window. All three series are NaN before window-1 positions,
// and entirely NaN when the series is shorter than the window.
func Bollinger(closes []float64, window int, stdDev float64) (upper, middle, lower []float64) {
	n := len(closes)
	upper, middle, lower = nanSeries(n), nanSeries(n), nanSeries(n)
	if window <= 1 || n < window {
		return upper, middle, lower
	}

	var sum, sumSq float64
	w := float64(window)
	for i, c := range closes {
		sum += c
		sumSq += c * c
		if i >= window {
			old := closes[i-window]
			sum -= old
			sumSq -= old * old
		}
		if i < window-1 {
			continue
		}
		mean := sum / w
		variance := (sumSq - sum*sum/w) / (w - 1)
		if variance < 0 {
			variance = 0
		}
		sd := math.Sqrt(variance)
		middle[i] = mean
		upper[i] = mean + stdDev*sd
		lower[i] = mean - stdDev*sd
	}
	return upper, middle, lower
}
