// Package config loads and validates run settings from YAML, with exchange
// credentials overlaid from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/autotrade/risk"
)

// Settings is the complete run configuration.
type Settings struct {
	Env      string         `yaml:"env"`
	API      APIConfig      `yaml:"api"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Strategy StrategyConfig `yaml:"strategy"`
	Data     DataConfig     `yaml:"data"`
	Risk     risk.Limits    `yaml:"risk"`
	Broker   BrokerConfig   `yaml:"broker"`

	CashStart float64 `yaml:"cash_start"`
}

// APIConfig carries exchange credentials. Prefer the environment overlay
// (EXCHANGE_API_KEY / EXCHANGE_API_SECRET) over committing keys to YAML.
type APIConfig struct {
	Key    string `yaml:"key"`
	Secret string `yaml:"secret"`
}

// ExchangeConfig selects the market data source.
type ExchangeConfig struct {
	Name string `yaml:"name"` // "fake" or "binance"
	Seed int64  `yaml:"seed"` // fake exchange seed
}

// StrategyConfig names the strategy, its symbols and its raw parameters. The
// parameter keys are strategy-specific and decoded by the factory.
type StrategyConfig struct {
	Name    string         `yaml:"name"`
	Symbols []string       `yaml:"symbols"`
	Params  map[string]any `yaml:"params"`
}

// DataConfig describes where candles come from. A CSV path wins over the
// exchange fetch.
type DataConfig struct {
	CSV      string `yaml:"csv"`
	Interval string `yaml:"interval"`
	Window   int    `yaml:"window"`
}

// BrokerConfig parameterizes the paper broker.
type BrokerConfig struct {
	FeeRate  float64 `yaml:"fee_rate"`
	Slippage float64 `yaml:"slippage"`
}

// Default returns settings with sensible demo values.
func Default() *Settings {
	return &Settings{
		Env:      "dev",
		Exchange: ExchangeConfig{Name: "fake", Seed: 42},
		Strategy: StrategyConfig{
			Name:    "rsi",
			Symbols: []string{"BTC-USD"},
		},
		Data:      DataConfig{Interval: "1m", Window: 60},
		Broker:    BrokerConfig{FeeRate: 0.0005},
		CashStart: 10_000,
	}
}

// Load reads YAML settings from path, overlays credentials from a .env file
// (if present) and the process environment, and validates the result.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// .env is optional; the process environment always wins.
	_ = godotenv.Load()
	if k := os.Getenv("EXCHANGE_API_KEY"); k != "" {
		s.API.Key = k
	}
	if sec := os.Getenv("EXCHANGE_API_SECRET"); sec != "" {
		s.API.Secret = sec
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// Validate checks the settings for a runnable configuration.
func (s *Settings) Validate() error {
	if s.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if len(s.Strategy.Symbols) == 0 {
		return fmt.Errorf("strategy.symbols must not be empty")
	}
	if s.Data.Window <= 0 {
		return fmt.Errorf("data.window must be positive")
	}
	if s.CashStart <= 0 {
		return fmt.Errorf("cash_start must be positive")
	}
	if s.Broker.FeeRate < 0 || s.Broker.Slippage < 0 {
		return fmt.Errorf("broker fee_rate and slippage must not be negative")
	}
	switch s.Exchange.Name {
	case "", "fake", "binance":
	default:
		return fmt.Errorf("unknown exchange %q", s.Exchange.Name)
	}
	return nil
}
