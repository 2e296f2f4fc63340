package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/market"
)

func TestBBandsConstructor(t *testing.T) {
	_, err := NewBBands([]string{"BTC-USD"}, map[string]any{"mode": "sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")

	s, err := NewBBands([]string{"BTC-USD"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "bbands", s.Name())
}

func TestBBandsBreakout(t *testing.T) {
	s, err := NewBBands([]string{"BTC-USD"}, map[string]any{
		"window": 3, "k": 1.0, "qty": 0.1,
	})
	require.NoError(t, err)
	bb := s.(*BBands)

	t.Run("upper band break buys", func(t *testing.T) {
		sig := bb.signals([]float64{100, 100, 100, 100, 110})
		assert.Equal(t, 1, sig[4])
	})

	t.Run("lower band break sells", func(t *testing.T) {
		sig := bb.signals([]float64{100, 100, 100, 100, 90})
		assert.Equal(t, -1, sig[4])
	})

	t.Run("staying outside the band does not re-fire", func(t *testing.T) {
		sig := bb.signals([]float64{100, 100, 100, 100, 110, 118})
		assert.Equal(t, 1, sig[4])
		assert.Equal(t, 0, sig[5])
	})

	t.Run("short history is silent", func(t *testing.T) {
		sig := bb.signals([]float64{100, 101, 102, 103})
		assert.Equal(t, []int{0, 0, 0, 0}, sig)
	})
}

func TestBBandsRevert(t *testing.T) {
	s, err := NewBBands([]string{"BTC-USD"}, map[string]any{
		"window": 3, "k": 1.0, "mode": "revert", "qty": 0.1,
	})
	require.NoError(t, err)
	bb := s.(*BBands)

	t.Run("re-entry from above sells", func(t *testing.T) {
		sig := bb.signals([]float64{100, 100, 100, 110, 100})
		assert.Equal(t, -1, sig[4])
	})

	t.Run("re-entry from below buys", func(t *testing.T) {
		sig := bb.signals([]float64{100, 100, 100, 90, 100})
		assert.Equal(t, 1, sig[4])
	})
}

func TestBBandsGenerate(t *testing.T) {
	s, err := NewBBands([]string{"BTC-USD"}, map[string]any{
		"window": 3, "k": 1.0, "qty": 0.1,
	})
	require.NoError(t, err)

	closes := []float64{100, 100, 100, 100, 110}
	orders := s.Generate(map[string][]market.Candle{"BTC-USD": candlesFromCloses(closes)})
	require.Len(t, orders, 1)
	assert.Equal(t, broker.Buy, orders[0].Side)
	assert.InDelta(t, 0.1, orders[0].Qty, 1e-12)
}
