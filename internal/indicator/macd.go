package indicator

// EMA computes the exponential moving average of values at the given span,
// seeded with the first value (smoothing factor 2/(span+1)). The result is
// defined from index 0; early positions are numerically meaningless until
// roughly a full span has elapsed.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACD computes the MACD line (fast EMA minus slow EMA), the signal line
// (EMA of the MACD line), and the histogram (line minus signal). Callers
// should disregard values before slow+signal periods have elapsed.
func MACD(closes []float64, fast, slow, signal int) (line, signalLine, histogram []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine = EMA(line, signal)

	histogram = make([]float64, len(closes))
	for i := range line {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}
