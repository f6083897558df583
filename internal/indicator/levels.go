package indicator

// SupportResistance derives support and resistance levels from rolling
// extremes of the closing price. Support is the lowest trailing-window
// minimum and resistance the highest trailing-window maximum observed
// anywhere in the series, so neither is guaranteed to bracket the latest
// price. Requires MinPoints points; ok is false otherwise.
func SupportResistance(closes []float64) (support, resistance float64, ok bool) {
	if len(closes) < MinPoints {
		return 0, 0, false
	}

	window := len(closes) / 4
	if window > 10 {
		window = 10
	}

	support = closes[0]
	resistance = closes[0]
	for i := window - 1; i < len(closes); i++ {
		lo, hi := closes[i], closes[i]
		for j := i - window + 1; j < i; j++ {
			if closes[j] < lo {
				lo = closes[j]
			}
			if closes[j] > hi {
				hi = closes[j]
			}
		}
		if i == window-1 || lo < support {
			support = lo
		}
		if i == window-1 || hi > resistance {
			resistance = hi
		}
	}
	return support, resistance, true
}
