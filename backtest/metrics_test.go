package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/autotrade/broker"
)

func TestMaxDrawdown(t *testing.T) {
	t.Run("single dip", func(t *testing.T) {
		mdd, peak, trough := MaxDrawdown([]float64{100, 120, 90, 130})
		assert.InDelta(t, -0.25, mdd, 1e-9)
		assert.Equal(t, 120.0, peak)
		assert.Equal(t, 90.0, trough)
	})

	t.Run("monotonic series has no drawdown", func(t *testing.T) {
		mdd, peak, trough := MaxDrawdown([]float64{1, 2, 3})
		assert.Zero(t, mdd)
		assert.Zero(t, peak)
		assert.Zero(t, trough)
	})

	t.Run("deepest dip wins", func(t *testing.T) {
		mdd, peak, trough := MaxDrawdown([]float64{100, 90, 120, 60, 200})
		assert.InDelta(t, -0.5, mdd, 1e-9)
		assert.Equal(t, 120.0, peak)
		assert.Equal(t, 60.0, trough)
	})

	t.Run("empty", func(t *testing.T) {
		mdd, _, _ := MaxDrawdown(nil)
		assert.Zero(t, mdd)
	})
}

func TestDrawdownPeriods(t *testing.T) {
	t.Run("decline and recovery", func(t *testing.T) {
		decline, recovery := DrawdownPeriods([]float64{100, 120, 90, 95, 130})
		assert.Equal(t, 1, decline)
		assert.Equal(t, 2, recovery)
	})

	t.Run("never recovers", func(t *testing.T) {
		decline, recovery := DrawdownPeriods([]float64{100, 120, 90, 95})
		assert.Equal(t, 1, decline)
		assert.Equal(t, 0, recovery)
	})

	t.Run("no drawdown at all", func(t *testing.T) {
		decline, recovery := DrawdownPeriods([]float64{1, 2, 3})
		assert.Zero(t, decline)
		assert.Zero(t, recovery)
	})
}

func TestTradePnLs(t *testing.T) {
	fills := []broker.Fill{
		{Side: broker.Sell, Qty: 1, Price: 50}, // no open buy, ignored
		{Side: broker.Buy, Qty: 1, Price: 100},
		{Side: broker.Buy, Qty: 2, Price: 110},
		{Side: broker.Sell, Qty: 1.5, Price: 120},
		{Side: broker.Sell, Qty: 1, Price: 105},
	}
	pnls := TradePnLs(fills)
	assert.Len(t, pnls, 2)
	assert.InDelta(t, 20.0, pnls[0], 1e-9) // (120-100)*min(1,1.5)
	assert.InDelta(t, -5.0, pnls[1], 1e-9) // (105-110)*min(2,1)

	assert.Empty(t, TradePnLs(nil))
}

func TestSharpeRatio(t *testing.T) {
	assert.Zero(t, SharpeRatio(nil))
	assert.Zero(t, SharpeRatio([]float64{0.1, -0.1}))
	assert.InDelta(t, 2.0, SharpeRatio([]float64{1, 2, 3}), 1e-6)
}

func TestSortino(t *testing.T) {
	assert.Zero(t, Sortino(nil))
	assert.True(t, math.IsInf(Sortino([]float64{1, 2, 3}), 1))
	// Identical losses have zero downside deviation.
	assert.True(t, math.IsInf(Sortino([]float64{-1, -1}), 1))
	assert.InDelta(t, -1.0/3, Sortino([]float64{0.3, -0.1, -0.3}), 1e-6)
}

func TestCAGR(t *testing.T) {
	assert.InDelta(t, 1.0, CAGR([]float64{100, 200}, 1.0), 1e-9)
	assert.Zero(t, CAGR([]float64{100, 200}, 1.0/400))
	assert.Zero(t, CAGR([]float64{100}, 1.0))
	assert.Zero(t, CAGR([]float64{0, 200}, 1.0))
	assert.Equal(t, 100.0, CAGR([]float64{100, 1e9}, 1.0))
	assert.Equal(t, -0.9999, CAGR([]float64{100, 0.0001}, 1.0))
}

func TestCalmar(t *testing.T) {
	assert.InDelta(t, 2.0, Calmar(0.5, -0.25), 1e-9)
	assert.Zero(t, Calmar(0.5, 0))
}
