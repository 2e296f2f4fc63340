package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/autotrade/backtest"
	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/config"
	"github.com/rustyeddy/autotrade/exchange"
	"github.com/rustyeddy/autotrade/journal"
	"github.com/rustyeddy/autotrade/market"
	"github.com/rustyeddy/autotrade/risk"
	"github.com/rustyeddy/autotrade/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay candle history through a strategy and report the results",
	Long: `Backtest runs the configured strategy over a candle sequence, screens its
intents through the risk gate, fills them against the paper broker, and
writes equity_curve.csv, trades.csv and summary.txt into the output
directory.

Example:
  autotrade backtest --config config.yaml --out reports`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btOutDir     string
	btDBPath     string
	btCash       float64
	btFeeRate    float64
	btSlippage   float64
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML settings (required)")
	backtestCmd.Flags().StringVarP(&btOutDir, "out", "o", "reports", "output directory for report artifacts")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "optional SQLite journal path")
	backtestCmd.Flags().Float64Var(&btCash, "cash", 0, "override starting cash")
	backtestCmd.Flags().Float64Var(&btFeeRate, "fee", -1, "override broker fee rate")
	backtestCmd.Flags().Float64Var(&btSlippage, "slippage", -1, "override broker slippage")

	backtestCmd.MarkFlagRequired("config")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	s, err := config.Load(btConfigPath)
	if err != nil {
		return err
	}
	if btCash > 0 {
		s.CashStart = btCash
	}
	if btFeeRate >= 0 {
		s.Broker.FeeRate = btFeeRate
	}
	if btSlippage >= 0 {
		s.Broker.Slippage = btSlippage
	}

	candles, err := loadCandles(cmd.Context(), s)
	if err != nil {
		return err
	}

	strat, err := strategies.DefaultFactory().New(s.Strategy.Name, s.Strategy.Symbols, s.Strategy.Params)
	if err != nil {
		return err
	}

	runner := &backtest.Runner{
		Strategy:  strat,
		Risk:      risk.NewManager(s.Risk),
		Broker:    broker.NewPaperBroker(s.Broker.FeeRate, s.Broker.Slippage),
		Window:    s.Data.Window,
		CashStart: s.CashStart,
	}

	log.Info().
		Str("strategy", strat.Name()).
		Int("candles", len(candles)).
		Int("window", s.Data.Window).
		Msg("starting backtest")

	res, err := runner.Run(candles)
	if err != nil {
		return err
	}

	paths, err := journal.WriteArtifacts(btOutDir, res)
	if err != nil {
		return err
	}

	if btDBPath != "" {
		j, err := journal.NewSQLite(btDBPath)
		if err != nil {
			return err
		}
		defer j.Close()
		runID, err := j.SaveResult(res)
		if err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
		log.Info().Str("run_id", runID).Str("db", btDBPath).Msg("run journaled")
	}

	fmt.Printf("trades:  %d\n", len(res.Fills))
	fmt.Printf("reports: %s\n", btOutDir)
	fmt.Printf("equity:  %s\n", paths.EquityCurve)
	return nil
}

func loadCandles(ctx context.Context, s *config.Settings) ([]market.Candle, error) {
	if s.Data.CSV != "" {
		return market.LoadCandlesCSV(s.Data.CSV)
	}

	var client exchange.Client
	switch s.Exchange.Name {
	case "binance":
		client = exchange.NewBinance(s.API.Key, s.API.Secret)
	default:
		client = exchange.NewFake(s.Exchange.Seed, 30_000)
	}
	return client.GetCandles(ctx, s.Strategy.Symbols[0], s.Data.Interval, s.Data.Window)
}
