package strategies

import (
	"fmt"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/indicators"
	"github.com/rustyeddy/autotrade/market"
)

// Bollinger band trading modes.
const (
	ModeBreakout = "breakout" // band break in trend direction
	ModeRevert   = "revert"   // re-entry into the band, mean reversion
)

// BBandsConfig holds the Bollinger Bands strategy parameters.
type BBandsConfig struct {
	Window       int     `yaml:"window"`
	K            float64 `yaml:"k"`
	Mode         string  `yaml:"mode"`
	UseCrossover bool    `yaml:"use_crossover"`
	Cooldown     int     `yaml:"cooldown"`
	Qty          float64 `yaml:"qty"`
}

// BBands trades SMA ± k*std bands. Breakout mode follows the trend out of a
// band; revert mode fades the move when price comes back inside. Crossover
// mode requires an actual cross between the previous and current bar, not
// mere occupancy outside the band.
type BBands struct {
	BBandsConfig
	symbols []string
}

// NewBBands is the factory constructor for the "bbands" strategy.
func NewBBands(symbols []string, params map[string]any) (Strategy, error) {
	cfg := BBandsConfig{
		Window:       20,
		K:            2.0,
		Mode:         ModeBreakout,
		UseCrossover: true,
		Qty:          0.001,
	}
	if err := decodeParams(params, &cfg); err != nil {
		return nil, err
	}
	if cfg.Mode != ModeBreakout && cfg.Mode != ModeRevert {
		return nil, fmt.Errorf("bbands: invalid mode %q (want %q or %q)", cfg.Mode, ModeBreakout, ModeRevert)
	}
	return &BBands{BBandsConfig: cfg, symbols: symbols}, nil
}

func (s *BBands) Name() string      { return "bbands" }
func (s *BBands) Symbols() []string { return s.symbols }
func (s *BBands) OnStart()          {}

func (s *BBands) Generate(candles map[string][]market.Candle) []broker.Intent {
	var orders []broker.Intent
	for _, sym := range s.symbols {
		cs := candles[sym]
		if len(cs) == 0 {
			continue
		}
		orders = append(orders, lastSignalIntent(s.signals(market.Closes(cs)), sym, s.Qty)...)
	}
	return orders
}

func (s *BBands) signals(closes []float64) []int {
	n := len(closes)
	sig := make([]int, n)
	if n < s.Window+2 {
		return sig
	}

	upper, lower := indicators.Bollinger(closes, s.Window, s.K)

	if s.Mode == ModeBreakout {
		if s.UseCrossover {
			for i := 1; i < n; i++ {
				if !upper[i-1].Valid || !upper[i].Valid {
					continue
				}
				c0, c1 := closes[i-1], closes[i]
				switch {
				case c0 <= upper[i-1].V && c1 > upper[i].V:
					sig[i] = sigBuy
				case c0 >= lower[i-1].V && c1 < lower[i].V:
					sig[i] = sigSell
				}
			}
		} else {
			for i := 0; i < n; i++ {
				if !upper[i].Valid {
					continue
				}
				if closes[i] > upper[i].V {
					sig[i] = sigBuy
				} else if closes[i] < lower[i].V {
					sig[i] = sigSell
				}
			}
		}
	} else {
		// Revert: leaving the outside of a band back toward the middle is the
		// reversal signal.
		for i := 1; i < n; i++ {
			if !upper[i-1].Valid || !upper[i].Valid {
				continue
			}
			c0, c1 := closes[i-1], closes[i]
			if s.UseCrossover {
				switch {
				case c0 >= upper[i-1].V && c1 < upper[i].V:
					sig[i] = sigSell
				case c0 <= lower[i-1].V && c1 > lower[i].V:
					sig[i] = sigBuy
				}
			} else {
				switch {
				case c1 < upper[i].V && c0 >= upper[i-1].V:
					sig[i] = sigSell
				case c1 > lower[i].V && c0 <= lower[i-1].V:
					sig[i] = sigBuy
				}
			}
		}
	}

	applyCooldown(sig, s.Cooldown)
	return sig
}
