package strategies

import (
	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/indicators"
	"github.com/rustyeddy/autotrade/market"
)

// MACDConfig holds the MACD strategy parameters.
type MACDConfig struct {
	Fast         int     `yaml:"fast"`
	Slow         int     `yaml:"slow"`
	Signal       int     `yaml:"signal"`
	UseCrossover bool    `yaml:"use_crossover"`
	Cooldown     int     `yaml:"cooldown"`
	Qty          float64 `yaml:"qty"`
}

// MACD trades histogram zero crosses: buy when the histogram turns positive,
// sell when it turns negative. Non-crossover mode signals by the current
// histogram sign on every bar.
type MACD struct {
	MACDConfig
	symbols []string
}

// NewMACD is the factory constructor for the "macd" strategy.
func NewMACD(symbols []string, params map[string]any) (Strategy, error) {
	cfg := MACDConfig{
		Fast:         12,
		Slow:         26,
		Signal:       9,
		UseCrossover: true,
		Qty:          0.001,
	}
	if err := decodeParams(params, &cfg); err != nil {
		return nil, err
	}
	return &MACD{MACDConfig: cfg, symbols: symbols}, nil
}

func (s *MACD) Name() string      { return "macd" }
func (s *MACD) Symbols() []string { return s.symbols }
func (s *MACD) OnStart()          {}

func (s *MACD) Generate(candles map[string][]market.Candle) []broker.Intent {
	var orders []broker.Intent
	for _, sym := range s.symbols {
		cs := candles[sym]
		if len(cs) == 0 {
			continue
		}
		closes := market.Closes(cs)
		if len(closes) < max(s.Fast, s.Slow, s.Signal)+2 {
			continue
		}
		_, _, hist := indicators.MACD(closes, s.Fast, s.Slow, s.Signal)
		orders = append(orders, lastSignalIntent(s.signals(hist), sym, s.Qty)...)
	}
	return orders
}

func (s *MACD) signals(hist []float64) []int {
	n := len(hist)
	sig := make([]int, n)
	if n < 2 {
		return sig
	}

	if s.UseCrossover {
		for i := 1; i < n; i++ {
			prev, curr := hist[i-1], hist[i]
			if prev <= 0 && curr > 0 {
				sig[i] = sigBuy
			} else if prev >= 0 && curr < 0 {
				sig[i] = sigSell
			}
		}
	} else {
		for i, h := range hist {
			if h > 0 {
				sig[i] = sigBuy
			} else if h < 0 {
				sig[i] = sigSell
			}
		}
	}

	applyCooldown(sig, s.Cooldown)
	return sig
}
