package model

import "fmt"

// SeriesError reports a structurally invalid price series (out-of-order or
// duplicate dates, non-positive prices, negative volume). It aborts analysis
// for the offending ticker only.
type SeriesError struct {
	Ticker string
	Reason string
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("price series for %q: %s", e.Ticker, e.Reason)
}
