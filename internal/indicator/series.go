// Package indicator implements the pure technical indicator functions used
// by the analyzer. Every function is stateless and operates on a
// chronologically ordered series of closing prices. Derived series are
// aligned index-for-index with the input; positions without enough history
// carry NaN.
package indicator

import "math"

// MinPoints is the minimum series length required for trend and
// support/resistance analysis.
const MinPoints = 20

func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
