package strategies

import (
	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/indicators"
	"github.com/rustyeddy/autotrade/market"
)

// RSIConfig holds the RSI strategy parameters.
type RSIConfig struct {
	Period       int     `yaml:"period"`
	BuyTh        float64 `yaml:"buy_th"`
	SellTh       float64 `yaml:"sell_th"`
	UseCrossover bool    `yaml:"use_crossover"`
	Cooldown     int     `yaml:"cooldown"`
	Qty          float64 `yaml:"qty"`
}

// RSI trades Wilder-RSI threshold crosses: buy when the RSI first drops to or
// below buy_th, sell when it first rises to or above sell_th. Non-crossover
// mode re-arms every bar the RSI sits inside a zone.
type RSI struct {
	RSIConfig
	symbols []string
}

// NewRSI is the factory constructor for the "rsi" strategy.
func NewRSI(symbols []string, params map[string]any) (Strategy, error) {
	cfg := RSIConfig{
		Period:       14,
		BuyTh:        30.0,
		SellTh:       70.0,
		UseCrossover: true,
		Qty:          0.001,
	}
	if err := decodeParams(params, &cfg); err != nil {
		return nil, err
	}
	return &RSI{RSIConfig: cfg, symbols: symbols}, nil
}

func (s *RSI) Name() string      { return "rsi" }
func (s *RSI) Symbols() []string { return s.symbols }
func (s *RSI) OnStart()          {}

func (s *RSI) Generate(candles map[string][]market.Candle) []broker.Intent {
	var orders []broker.Intent
	for _, sym := range s.symbols {
		cs := candles[sym]
		if len(cs) == 0 {
			continue
		}
		sig := s.signals(indicators.WilderRSI(market.Closes(cs), s.Period))
		if len(sig) < 2 {
			continue
		}
		orders = append(orders, lastSignalIntent(sig, sym, s.Qty)...)
	}
	return orders
}

func (s *RSI) signals(rsi []indicators.Value) []int {
	n := len(rsi)
	sig := make([]int, n)
	if n == 0 {
		return sig
	}

	if s.UseCrossover {
		below := make([]bool, n)
		above := make([]bool, n)
		for i, v := range rsi {
			if !v.Valid {
				continue
			}
			below[i] = v.V <= s.BuyTh
			above[i] = v.V >= s.SellTh
		}
		for i := 1; i < n; i++ {
			if below[i] && !below[i-1] {
				sig[i] = sigBuy
			} else if above[i] && !above[i-1] {
				sig[i] = sigSell
			}
		}
	} else {
		for i, v := range rsi {
			if !v.Valid {
				continue
			}
			if v.V <= s.BuyTh {
				sig[i] = sigBuy
			} else if v.V >= s.SellTh {
				sig[i] = sigSell
			}
		}
	}

	applyCooldown(sig, s.Cooldown)
	return sig
}
