package strategies

import "github.com/rustyeddy/autotrade/broker"

// Signal values per bar: +1 buy, -1 sell, 0 wait.
const (
	sigBuy  = 1
	sigSell = -1
)

// applyCooldown suppresses any non-zero signal that fires within cd bars of
// the previous surviving non-zero signal, guaranteeing at least cd bars
// between consecutive signals.
func applyCooldown(sig []int, cd int) {
	if cd <= 0 {
		return
	}
	last := -(1 << 30)
	for i := range sig {
		if sig[i] == 0 {
			continue
		}
		if i-last <= cd {
			sig[i] = 0
			continue
		}
		last = i
	}
}

// lastSignalIntent converts the final bar's signal into at most one market
// order intent.
func lastSignalIntent(sig []int, symbol string, qty float64) []broker.Intent {
	if len(sig) == 0 {
		return nil
	}
	switch sig[len(sig)-1] {
	case sigBuy:
		return []broker.Intent{broker.Market(symbol, broker.Buy, qty)}
	case sigSell:
		return []broker.Intent{broker.Market(symbol, broker.Sell, qty)}
	}
	return nil
}
