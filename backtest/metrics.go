package backtest

import (
	"math"

	"github.com/rustyeddy/autotrade/broker"
)

const (
	metricsEps = 1e-12
	// minYears is roughly one day expressed in years; CAGR over anything
	// shorter is noise.
	minYears = 1.0 / 365.0
)

// MaxDrawdown returns the most negative peak-to-trough decline of an equity
// series along with the peak and trough values that produced it. The result
// is <= 0, and exactly 0 for a non-decreasing series.
func MaxDrawdown(equity []float64) (mdd, peak, trough float64) {
	runningPeak := math.Inf(-1)
	curPeak := 0.0
	for _, v := range equity {
		if v > runningPeak {
			runningPeak = v
			curPeak = v
		}
		dd := 0.0
		if curPeak != 0 {
			dd = v/curPeak - 1.0
		}
		if dd < mdd {
			mdd = dd
			peak = curPeak
			trough = v
		}
	}
	return mdd, peak, trough
}

// DrawdownPeriods returns the bar count from the peak preceding the maximum
// drawdown trough to that trough, and from the trough to the first later
// point at or above the pre-drawdown peak. Recovery is 0 if the series never
// recovers.
func DrawdownPeriods(equity []float64) (decline, recovery int) {
	runningPeak := math.Inf(-1)
	peakIdx, troughIdx := -1, -1
	curPeakIdx := -1
	mdd := 0.0
	curPeakVal := 0.0

	for i, v := range equity {
		if v > runningPeak {
			runningPeak = v
			curPeakIdx = i
			curPeakVal = v
		}
		dd := 0.0
		if curPeakVal != 0 {
			dd = v/curPeakVal - 1.0
		}
		if dd < mdd {
			mdd = dd
			peakIdx = curPeakIdx
			troughIdx = i
		}
	}

	if troughIdx < 0 {
		return 0, 0
	}
	decline = troughIdx - peakIdx

	peakVal := equity[peakIdx]
	for i := troughIdx + 1; i < len(equity); i++ {
		if equity[i] >= peakVal {
			return decline, i - troughIdx
		}
	}
	return decline, 0
}

// TradePnLs matches fills FIFO 1:1: every buy joins a queue, every sell
// realizes (sell - buy) * min(qty) against the oldest unmatched buy.
// Unmatched sells are ignored. Partial-quantity carry-over across multiple
// matches is deliberately not modeled.
func TradePnLs(fills []broker.Fill) []float64 {
	var pnls []float64
	var buys []broker.Fill
	for _, f := range fills {
		if f.Side == broker.Buy {
			buys = append(buys, f)
			continue
		}
		if len(buys) == 0 {
			continue
		}
		b := buys[0]
		buys = buys[1:]
		pnls = append(pnls, (f.Price-b.Price)*math.Min(b.Qty, f.Qty))
	}
	return pnls
}

// SharpeRatio is the sample mean over the sample standard deviation (n-1) of
// a period-return sequence, unannualized. An empty sequence scores 0.
func SharpeRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	n := float64(len(returns))
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= n

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= math.Max(n-1, 1)

	return mean / (math.Sqrt(variance) + metricsEps)
}

// Sortino is the mean return over the population standard deviation of only
// the negative returns. With no negative returns, or a downside deviation
// within epsilon of zero, it is +Inf. An empty sequence scores 0.
func Sortino(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean := 0.0
	var downside []float64
	for _, r := range returns {
		mean += r
		if r < 0 {
			downside = append(downside, r)
		}
	}
	mean /= float64(len(returns))

	if len(downside) == 0 {
		return math.Inf(1)
	}
	dMean := 0.0
	for _, r := range downside {
		dMean += r
	}
	dMean /= float64(len(downside))
	variance := 0.0
	for _, r := range downside {
		d := r - dMean
		variance += d * d
	}
	dev := math.Sqrt(variance / float64(len(downside)))
	if dev <= metricsEps {
		return math.Inf(1)
	}
	return mean / dev
}

// CAGR computes the compound annual growth rate between the first and last
// equity values. Degenerate inputs (too-short span, non-positive endpoints,
// non-finite intermediate results) return 0, and the final rate is clamped
// to [-0.9999, 100] to suppress blow-ups from short noisy series.
func CAGR(equity []float64, years float64) float64 {
	if len(equity) < 2 || years < minYears {
		return 0
	}
	initial, final := equity[0], equity[len(equity)-1]
	if initial <= 0 || final <= 0 {
		return 0
	}
	ratio := final / initial
	g := math.Exp(math.Log(ratio)/years) - 1.0
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return 0
	}
	if g < -0.9999 {
		g = -0.9999
	}
	if g > 100.0 {
		g = 100.0
	}
	return g
}

// Calmar is CAGR over the magnitude of max drawdown, 0 if the drawdown is
// exactly 0.
func Calmar(cagr, mdd float64) float64 {
	if mdd == 0 {
		return 0
	}
	return cagr / math.Abs(mdd)
}
