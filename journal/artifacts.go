// Package journal persists backtest results: CSV/text report artifacts for
// external consumption and a SQLite store for queryable run history.
package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rustyeddy/autotrade/backtest"
)

// ArtifactPaths are the report files a run produces.
type ArtifactPaths struct {
	EquityCurve string
	Trades      string
	Summary     string
}

// WriteArtifacts writes equity_curve.csv, trades.csv and summary.txt for a
// completed run into dir, creating it if needed.
func WriteArtifacts(dir string, res backtest.Result) (ArtifactPaths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ArtifactPaths{}, fmt.Errorf("create report dir: %w", err)
	}

	paths := ArtifactPaths{
		EquityCurve: filepath.Join(dir, "equity_curve.csv"),
		Trades:      filepath.Join(dir, "trades.csv"),
		Summary:     filepath.Join(dir, "summary.txt"),
	}

	if err := writeEquityCurve(paths.EquityCurve, res); err != nil {
		return paths, err
	}
	if err := writeTrades(paths.Trades, res); err != nil {
		return paths, err
	}
	if err := writeSummary(paths.Summary, res); err != nil {
		return paths, err
	}
	return paths, nil
}

func writeEquityCurve(path string, res backtest.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create equity curve: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ts", "equity", "price", "cash", "qty", "avg"}); err != nil {
		return err
	}
	for _, p := range res.Equity {
		if err := w.Write([]string{
			strconv.FormatInt(p.TS, 10),
			f2(p.Equity),
			f2(p.Price),
			f2(p.Cash),
			f8(p.Qty),
			f2(p.Avg),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTrades(path string, res backtest.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trade log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ts", "id", "symbol", "side", "qty", "price"}); err != nil {
		return err
	}
	for _, t := range res.Fills {
		if err := w.Write([]string{
			strconv.FormatInt(t.TS, 10),
			t.ID,
			t.Symbol,
			string(t.Side),
			f8(t.Qty),
			f2(t.Price),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSummary(path string, res backtest.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	defer f.Close()

	var lastPrice, finalEquity float64
	if n := len(res.Equity); n > 0 {
		lastPrice = res.Equity[n-1].Price
		finalEquity = res.Equity[n-1].Equity
	}

	mdd, peakV, troughV := backtest.MaxDrawdown(res.EquityValues())

	pnls := backtest.TradePnLs(res.Fills)
	wins := 0
	avgPnl := 0.0
	for _, p := range pnls {
		if p > 0 {
			wins++
		}
		avgPnl += p
	}
	winRate := 0.0
	if len(pnls) > 0 {
		winRate = float64(wins) / float64(len(pnls)) * 100.0
		avgPnl /= float64(len(pnls))
	}

	sharpe := backtest.SharpeRatio(res.Returns())

	fmt.Fprintf(f, "final_equity=%.2f\n", finalEquity)
	fmt.Fprintf(f, "cash=%.2f, qty=%.8f, avg=%.2f, last_price=%.2f\n",
		res.Portfolio.Cash, res.Portfolio.Pos.Qty, res.Portfolio.Pos.Avg, lastPrice)
	fmt.Fprintf(f, "trades=%d, closed_trades=%d\n", len(res.Fills), len(pnls))
	fmt.Fprintf(f, "win_rate=%.2f%%\n", winRate)
	fmt.Fprintf(f, "avg_trade_pnl=%.4f\n", avgPnl)
	fmt.Fprintf(f, "max_drawdown=%.2f%% (peak=%.2f -> trough=%.2f)\n", mdd*100, peakV, troughV)
	fmt.Fprintf(f, "sharpe=%.4f\n", sharpe)
	return nil
}

func f2(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }
func f8(x float64) string { return strconv.FormatFloat(x, 'f', 8, 64) }
