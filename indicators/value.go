// Package indicators provides technical analysis indicators for trading.
//
// All functions are pure and total over any input length. Samples that are
// not yet available (warmup not complete) are represented by an explicit
// undefined Value rather than NaN, so callers branch on Valid instead of
// comparing a float to itself.
package indicators

// Value is one indicator sample. Valid is false while the indicator is still
// warming up at that index.
type Value struct {
	V     float64
	Valid bool
}

// Of wraps a defined sample.
func Of(v float64) Value { return Value{V: v, Valid: true} }

// Undefined returns the "not yet available" marker.
func Undefined() Value { return Value{} }
