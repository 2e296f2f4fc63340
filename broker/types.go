// Package broker defines order intents, fills and the paper broker that
// simulates executions against a single-symbol cash+position ledger.
package broker

import "fmt"

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide validates a side string.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), nil
	}
	return "", fmt.Errorf("invalid order side %q", s)
}

// Intent is a request to trade, produced by a strategy and screened by the
// risk gate before it reaches a broker. Immutable value.
type Intent struct {
	Symbol string
	Side   Side
	Qty    float64
	Kind   string // only "market" is supported
}

// Market builds a market-order intent.
func Market(symbol string, side Side, qty float64) Intent {
	return Intent{Symbol: symbol, Side: side, Qty: qty, Kind: "market"}
}

// Fill is one completed simulated transaction.
type Fill struct {
	ID     string
	Symbol string
	Side   Side
	Qty    float64
	Price  float64
	TS     int64
}
