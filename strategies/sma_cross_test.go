package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/market"
)

func TestSMACrossGenerate(t *testing.T) {
	newStrat := func(t *testing.T) Strategy {
		s, err := NewSMACross([]string{"BTC-USD"}, map[string]any{
			"fast": 2, "slow": 3, "qty": 1.0,
		})
		require.NoError(t, err)
		return s
	}

	t.Run("upward cross buys", func(t *testing.T) {
		s := newStrat(t)
		cs := candlesFromCloses([]float64{5, 4, 3, 2, 10})
		orders := s.Generate(map[string][]market.Candle{"BTC-USD": cs})
		require.Len(t, orders, 1)
		assert.Equal(t, broker.Buy, orders[0].Side)
		assert.Equal(t, 1.0, orders[0].Qty)
	})

	t.Run("downward cross sells", func(t *testing.T) {
		s := newStrat(t)
		cs := candlesFromCloses([]float64{2, 3, 4, 5, 1})
		orders := s.Generate(map[string][]market.Candle{"BTC-USD": cs})
		require.Len(t, orders, 1)
		assert.Equal(t, broker.Sell, orders[0].Side)
	})

	t.Run("no cross is silent", func(t *testing.T) {
		s := newStrat(t)
		cs := candlesFromCloses([]float64{1, 2, 3, 4, 5})
		assert.Empty(t, s.Generate(map[string][]market.Candle{"BTC-USD": cs}))
	})

	t.Run("insufficient history is silent", func(t *testing.T) {
		s := newStrat(t)
		cs := candlesFromCloses([]float64{1, 2, 3})
		assert.Empty(t, s.Generate(map[string][]market.Candle{"BTC-USD": cs}))
	})
}

func TestFactory(t *testing.T) {
	f := DefaultFactory()

	t.Run("knows all built-ins", func(t *testing.T) {
		assert.Equal(t, []string{"bbands", "macd", "rsi", "sma_cross"}, f.Names())
	})

	t.Run("unknown name fails with the available list", func(t *testing.T) {
		_, err := f.New("hodl", []string{"BTC-USD"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown strategy")
		assert.Contains(t, err.Error(), "rsi")
	})

	t.Run("params decode onto the config", func(t *testing.T) {
		s, err := f.New("rsi", []string{"BTC-USD"}, map[string]any{
			"period": 7, "cooldown": 2,
		})
		require.NoError(t, err)
		r := s.(*RSI)
		assert.Equal(t, 7, r.Period)
		assert.Equal(t, 2, r.Cooldown)
		// Untouched params keep their defaults.
		assert.Equal(t, 30.0, r.BuyTh)
		assert.True(t, r.UseCrossover)
		assert.Equal(t, []string{"BTC-USD"}, s.Symbols())
	})

	t.Run("crossover can be disabled from params", func(t *testing.T) {
		s, err := f.New("rsi", nil, map[string]any{"use_crossover": false})
		require.NoError(t, err)
		assert.False(t, s.(*RSI).UseCrossover)
	})
}
