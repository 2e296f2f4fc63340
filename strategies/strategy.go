// Package strategies contains the signal-generating strategies and the
// factory that builds them by name.
package strategies

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/market"
)

// Strategy generates order intents from the candle history visible at the
// time of the call. Implementations recompute their signal series from the
// full supplied window and convert only the last bar's signal into an intent,
// at most one per symbol per call. Insufficient history yields no intents,
// not an error.
type Strategy interface {
	Name() string
	Symbols() []string
	OnStart()
	Generate(candles map[string][]market.Candle) []broker.Intent
}

// Constructor builds a strategy from its symbol list and raw parameters.
type Constructor func(symbols []string, params map[string]any) (Strategy, error)

// Factory maps strategy names to constructors. Build one at process start and
// pass it to whatever assembles a run; there is no global registry.
type Factory map[string]Constructor

// DefaultFactory returns the factory with all built-in strategies.
func DefaultFactory() Factory {
	return Factory{
		"rsi":       NewRSI,
		"macd":      NewMACD,
		"bbands":    NewBBands,
		"sma_cross": NewSMACross,
	}
}

// New builds the named strategy or fails with the list of known names.
func (f Factory) New(name string, symbols []string, params map[string]any) (Strategy, error) {
	ctor, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, f.Names())
	}
	return ctor(symbols, params)
}

// Names lists the registered strategy names, sorted.
func (f Factory) Names() []string {
	names := make([]string, 0, len(f))
	for n := range f {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// decodeParams maps loosely-typed config params onto a strategy config
// struct, reusing the yaml tags the settings file already uses.
func decodeParams(params map[string]any, dst any) error {
	if len(params) == 0 {
		return nil
	}
	raw, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode strategy params: %w", err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode strategy params: %w", err)
	}
	return nil
}
