// Package backtest replays candle history through a strategy, risk gate and
// paper broker, and derives performance metrics from the result.
package backtest

import (
	"fmt"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/market"
	"github.com/rustyeddy/autotrade/risk"
	"github.com/rustyeddy/autotrade/strategies"
)

// EquityPoint is a per-bar mark-to-market snapshot of the run portfolio.
type EquityPoint struct {
	TS     int64
	Equity float64
	Price  float64
	Cash   float64
	Qty    float64
	Avg    float64
}

// Result carries everything a run produced: the final portfolio, the fill
// log, and one equity point per input candle.
type Result struct {
	Symbol    string
	Portfolio broker.Portfolio
	Fills     []broker.Fill
	Equity    []EquityPoint
}

// EquityValues extracts the equity series for the metrics functions.
func (r Result) EquityValues() []float64 {
	out := make([]float64, len(r.Equity))
	for i, p := range r.Equity {
		out[i] = p.Equity
	}
	return out
}

// Returns computes per-bar equity returns, skipping bars with non-positive
// prior equity.
func (r Result) Returns() []float64 {
	var out []float64
	for i := 1; i < len(r.Equity); i++ {
		prev := r.Equity[i-1].Equity
		if prev > 0 {
			out = append(out, r.Equity[i].Equity/prev-1.0)
		}
	}
	return out
}

// Runner drives a deterministic single-symbol replay. Each step exposes the
// candle prefix visible at that bar to the strategy, screens the returned
// intents through the risk gate, and fills accepted intents at that bar's
// close. The portfolio and risk state are owned by the runner for the whole
// run; nothing else retains a reference across steps.
type Runner struct {
	Strategy strategies.Strategy
	Risk     *risk.Manager
	Broker   *broker.PaperBroker

	Window    int
	CashStart float64
}

// Run replays the candle sequence and returns the full result. Indicators
// are recomputed from scratch on the growing history each step; backtests
// run offline and window sizes are bounded by configuration, so correctness
// wins over incremental indicator state.
func (r *Runner) Run(candles []market.Candle) (Result, error) {
	if r.Strategy == nil {
		return Result{}, fmt.Errorf("backtest: Strategy is required")
	}
	if r.Broker == nil {
		return Result{}, fmt.Errorf("backtest: Broker is required")
	}
	if r.Window <= 0 {
		return Result{}, fmt.Errorf("backtest: window must be positive, got %d", r.Window)
	}
	syms := r.Strategy.Symbols()
	if len(syms) == 0 {
		return Result{}, fmt.Errorf("backtest: strategy trades no symbols")
	}
	sym := syms[0]

	pf := broker.NewPortfolio(r.CashStart)
	if r.Risk != nil {
		r.Risk.Reset(r.CashStart)
	}
	r.Strategy.OnStart()

	res := Result{
		Symbol: sym,
		Equity: make([]EquityPoint, 0, len(candles)),
	}

	for i, c := range candles {
		// Bars before the first full window still get equity points; they
		// just never trade.
		if i+1 >= r.Window {
			window := candles[:i+1]
			intents := r.Strategy.Generate(map[string][]market.Candle{sym: window})
			if len(intents) > 0 {
				accepted := intents
				if r.Risk != nil {
					accepted = r.Risk.Validate(intents, float64(c.TS))
				}
				if len(accepted) > 0 {
					res.Fills = append(res.Fills, r.Broker.Fill(accepted, c.Close, pf, c.TS)...)
				}
			}
		}

		eq := pf.Equity(c.Close)
		res.Equity = append(res.Equity, EquityPoint{
			TS:     c.TS,
			Equity: eq,
			Price:  c.Close,
			Cash:   pf.Cash,
			Qty:    pf.Pos.Qty,
			Avg:    pf.Pos.Avg,
		})
		if r.Risk != nil {
			r.Risk.UpdateEquity(eq)
		}
	}

	res.Portfolio = *pf
	return res, nil
}
