package strategies

import (
	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/indicators"
	"github.com/rustyeddy/autotrade/market"
)

// SMACrossConfig holds the SMA crossover strategy parameters.
type SMACrossConfig struct {
	Fast int     `yaml:"fast"`
	Slow int     `yaml:"slow"`
	Qty  float64 `yaml:"qty"`
}

// SMACross buys when the fast SMA crosses above the slow SMA and sells on
// the symmetric downward cross. It is always crossover-based and carries no
// cooldown parameter.
type SMACross struct {
	SMACrossConfig
	symbols []string
}

// NewSMACross is the factory constructor for the "sma_cross" strategy.
func NewSMACross(symbols []string, params map[string]any) (Strategy, error) {
	cfg := SMACrossConfig{Fast: 5, Slow: 10, Qty: 0.001}
	if err := decodeParams(params, &cfg); err != nil {
		return nil, err
	}
	return &SMACross{SMACrossConfig: cfg, symbols: symbols}, nil
}

func (s *SMACross) Name() string      { return "sma_cross" }
func (s *SMACross) Symbols() []string { return s.symbols }
func (s *SMACross) OnStart()          {}

func (s *SMACross) Generate(candles map[string][]market.Candle) []broker.Intent {
	var orders []broker.Intent
	for _, sym := range s.symbols {
		cs := candles[sym]
		if len(cs) < s.Slow+1 {
			continue
		}
		closes := market.Closes(cs)
		fast := indicators.SMA(closes, s.Fast)
		slow := indicators.SMA(closes, s.Slow)

		n := len(closes)
		f0, f1 := fast[n-2], fast[n-1]
		s0, s1 := slow[n-2], slow[n-1]
		if !f0.Valid || !f1.Valid || !s0.Valid || !s1.Valid {
			continue
		}

		switch {
		case f0.V <= s0.V && f1.V > s1.V:
			orders = append(orders, broker.Market(sym, broker.Buy, s.Qty))
		case f0.V >= s0.V && f1.V < s1.V:
			orders = append(orders, broker.Market(sym, broker.Sell, s.Qty))
		}
	}
	return orders
}
