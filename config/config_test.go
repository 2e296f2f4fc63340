package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
strategy:
  name: macd
  symbols: [ETH-USD]
  params:
    fast: 8
    slow: 21
data:
  csv: candles.csv
  window: 120
risk:
  max_orders: 10
  cooldown_s: 30
broker:
  fee_rate: 0.001
  slippage: 0.0002
cash_start: 25000
`)
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "macd", s.Strategy.Name)
		assert.Equal(t, []string{"ETH-USD"}, s.Strategy.Symbols)
		assert.Equal(t, 8, s.Strategy.Params["fast"])
		assert.Equal(t, "candles.csv", s.Data.CSV)
		assert.Equal(t, 120, s.Data.Window)
		assert.Equal(t, 10, s.Risk.MaxOrders)
		assert.Equal(t, 30.0, s.Risk.Cooldown)
		assert.Equal(t, 0.001, s.Broker.FeeRate)
		assert.Equal(t, 25_000.0, s.CashStart)
	})

	t.Run("keeps defaults when unset", func(t *testing.T) {
		path := writeConfig(t, "strategy:\n  name: rsi\n  symbols: [BTC-USD]\n")
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "fake", s.Exchange.Name)
		assert.Equal(t, int64(42), s.Exchange.Seed)
		assert.Equal(t, "1m", s.Data.Interval)
		assert.Equal(t, 60, s.Data.Window)
		assert.Equal(t, 10_000.0, s.CashStart)
	})

	t.Run("credentials come from the environment", func(t *testing.T) {
		t.Setenv("EXCHANGE_API_KEY", "key-from-env")
		t.Setenv("EXCHANGE_API_SECRET", "secret-from-env")
		path := writeConfig(t, "strategy:\n  name: rsi\n  symbols: [BTC-USD]\napi:\n  key: yaml-key\n")
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "key-from-env", s.API.Key)
		assert.Equal(t, "secret-from-env", s.API.Secret)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "strategy: [unclosed"))
		assert.ErrorContains(t, err, "parse config")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Settings { return Default() }

	assert.NoError(t, base().Validate())

	cases := []struct {
		name string
		mut  func(*Settings)
		want string
	}{
		{"missing strategy name", func(s *Settings) { s.Strategy.Name = "" }, "strategy.name"},
		{"no symbols", func(s *Settings) { s.Strategy.Symbols = nil }, "symbols"},
		{"zero window", func(s *Settings) { s.Data.Window = 0 }, "window"},
		{"zero cash", func(s *Settings) { s.CashStart = 0 }, "cash_start"},
		{"negative fee", func(s *Settings) { s.Broker.FeeRate = -0.01 }, "fee_rate"},
		{"negative slippage", func(s *Settings) { s.Broker.Slippage = -0.01 }, "slippage"},
		{"unknown exchange", func(s *Settings) { s.Exchange.Name = "mtgox" }, "unknown exchange"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mut(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
