// Package market defines the candle data model and loaders for candle series.
package market

import (
	"sort"
	"time"
)

// Candle represents one OHLCV sample for a fixed interval. TS is the unix
// second the candle opened.
type Candle struct {
	TS     int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Time returns the candle open time in UTC.
func (c Candle) Time() time.Time {
	return time.Unix(c.TS, 0).UTC()
}

// Closes extracts the close series from a candle slice.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// SortByTime orders candles ascending by timestamp. The backtest engine
// requires time-ascending input.
func SortByTime(candles []Candle) {
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].TS < candles[j].TS
	})
}
