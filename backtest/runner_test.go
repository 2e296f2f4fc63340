package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/market"
	"github.com/rustyeddy/autotrade/risk"
)

// scriptStrategy emits one fixed intent when the visible history reaches a
// scripted length. It keeps runner tests independent of indicator math.
type scriptStrategy struct {
	symbols []string
	acts    map[int]broker.Side
	qty     float64
}

func (s *scriptStrategy) Name() string      { return "script" }
func (s *scriptStrategy) Symbols() []string { return s.symbols }
func (s *scriptStrategy) OnStart()          {}

func (s *scriptStrategy) Generate(candles map[string][]market.Candle) []broker.Intent {
	sym := s.symbols[0]
	if side, ok := s.acts[len(candles[sym])]; ok {
		return []broker.Intent{broker.Market(sym, side, s.qty)}
	}
	return nil
}

func runCandles(closes []float64) []market.Candle {
	cs := make([]market.Candle, len(closes))
	for i, c := range closes {
		cs[i] = market.Candle{TS: int64(i) * 60, Open: c, High: c, Low: c, Close: c, Volume: 1}
	}
	return cs
}

func TestRunnerRun(t *testing.T) {
	candles := runCandles([]float64{100, 101, 102, 103, 104})

	newRunner := func(m *risk.Manager) *Runner {
		return &Runner{
			Strategy: &scriptStrategy{
				symbols: []string{"BTC-USD"},
				acts:    map[int]broker.Side{3: broker.Buy, 5: broker.Sell},
				qty:     1,
			},
			Risk:      m,
			Broker:    &broker.PaperBroker{},
			Window:    2,
			CashStart: 10_000,
		}
	}

	t.Run("round trip", func(t *testing.T) {
		res, err := newRunner(nil).Run(candles)
		require.NoError(t, err)
		assert.Equal(t, "BTC-USD", res.Symbol)

		require.Len(t, res.Fills, 2)
		assert.Equal(t, broker.Buy, res.Fills[0].Side)
		assert.Equal(t, 102.0, res.Fills[0].Price)
		assert.Equal(t, int64(120), res.Fills[0].TS)
		assert.Equal(t, broker.Sell, res.Fills[1].Side)
		assert.Equal(t, 104.0, res.Fills[1].Price)

		require.Len(t, res.Equity, len(candles))
		assert.InDelta(t, 10_000, res.Equity[0].Equity, 1e-9)
		assert.InDelta(t, 10_001, res.Equity[3].Equity, 1e-9)
		assert.InDelta(t, 10_002, res.Equity[4].Equity, 1e-9)

		// Flat at the end; the 2-point gain sits in cash.
		assert.InDelta(t, 10_002, res.Portfolio.Cash, 1e-9)
		assert.Zero(t, res.Portfolio.Pos.Qty)
	})

	t.Run("equity points cover pre-window bars", func(t *testing.T) {
		r := newRunner(nil)
		r.Window = 10
		res, err := r.Run(candles)
		require.NoError(t, err)
		assert.Empty(t, res.Fills)
		require.Len(t, res.Equity, len(candles))
		for _, p := range res.Equity {
			assert.InDelta(t, 10_000, p.Equity, 1e-9)
		}
	})

	t.Run("risk gate caps orders", func(t *testing.T) {
		res, err := newRunner(risk.NewManager(risk.Limits{MaxOrders: 1})).Run(candles)
		require.NoError(t, err)
		require.Len(t, res.Fills, 1)
		assert.Equal(t, broker.Buy, res.Fills[0].Side)
		// The sell was rejected, so the position is still open.
		assert.InDelta(t, 1.0, res.Portfolio.Pos.Qty, 1e-12)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		a, err := newRunner(risk.NewManager(risk.Limits{})).Run(candles)
		require.NoError(t, err)
		b, err := newRunner(risk.NewManager(risk.Limits{})).Run(candles)
		require.NoError(t, err)
		assert.Equal(t, a.Equity, b.Equity)
		assert.Equal(t, a.Portfolio, b.Portfolio)
		require.Equal(t, len(a.Fills), len(b.Fills))
		for i := range a.Fills {
			assert.Equal(t, a.Fills[i].Price, b.Fills[i].Price)
			assert.Equal(t, a.Fills[i].TS, b.Fills[i].TS)
		}
	})

	t.Run("rejects missing pieces", func(t *testing.T) {
		r := newRunner(nil)
		r.Strategy = nil
		_, err := r.Run(candles)
		assert.ErrorContains(t, err, "Strategy")

		r = newRunner(nil)
		r.Broker = nil
		_, err = r.Run(candles)
		assert.ErrorContains(t, err, "Broker")

		r = newRunner(nil)
		r.Window = 0
		_, err = r.Run(candles)
		assert.ErrorContains(t, err, "window")

		r = newRunner(nil)
		r.Strategy = &scriptStrategy{}
		_, err = r.Run(candles)
		assert.ErrorContains(t, err, "symbols")
	})
}

func TestResultReturns(t *testing.T) {
	res := Result{Equity: []EquityPoint{
		{Equity: 100}, {Equity: 110}, {Equity: 99},
	}}
	ret := res.Returns()
	require.Len(t, ret, 2)
	assert.InDelta(t, 0.10, ret[0], 1e-9)
	assert.InDelta(t, -0.10, ret[1], 1e-9)

	assert.Equal(t, []float64{100, 110, 99}, res.EquityValues())
}
