package indicator

// SMA computes the simple rolling mean of closes over the trailing window
// using a sliding accumulator. The first window-1 positions are NaN. Returns
// nil when the series is shorter than the window: the whole series is
// undefined, not an error.
func SMA(closes []float64, window int) []float64 {
	if window <= 0 || len(closes) < window {
		return nil
	}
	out := nanSeries(len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}
