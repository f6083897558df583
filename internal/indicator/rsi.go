package indicator

// RSI computes the Relative Strength Index over the given period using
// simple rolling means of gains and losses. The first `period` positions are
// NaN. A zero rolling loss saturates the oscillator at 100 instead of
// dividing by zero.
func RSI(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
		if i > period {
			old := closes[i-period] - closes[i-period-1]
			if old > 0 {
				gainSum -= old
			} else {
				lossSum += old
			}
		}
		if i < period {
			continue
		}
		// Rounding drift from the sliding sums must not produce negatives.
		if gainSum < 0 {
			gainSum = 0
		}
		if lossSum < 0 {
			lossSum = 0
		}
		meanGain := gainSum / float64(period)
		meanLoss := lossSum / float64(period)
		if meanLoss == 0 {
			out[i] = 100
			continue
		}
		rs := meanGain / meanLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
