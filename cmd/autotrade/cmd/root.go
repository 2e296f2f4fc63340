package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "autotrade",
	Short: "A deterministic trade-signal backtesting engine",
	Long: `Autotrade turns candle history into buy/sell signals via pluggable
technical-indicator strategies, simulates fills against a paper broker with
fees and slippage, and derives performance metrics from the equity path.

It provides tools for:
  - Backtesting RSI, MACD, Bollinger and SMA-cross strategies
  - Risk-gated order screening with loss-limit circuit breakers
  - Equity-curve, trade-log and summary report artifacts
  - Downloading candle history into loader-ready CSV files`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
