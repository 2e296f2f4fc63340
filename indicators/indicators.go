package indicators

import "math"

// SMA computes a simple moving average. The output has one sample per input;
// indexes before window-1 are undefined. The rolling sum is maintained in
// O(1) per point.
func SMA(values []float64, window int) []Value {
	out := make([]Value, 0, len(values))
	if window <= 0 {
		for range values {
			out = append(out, Undefined())
		}
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i+1 >= window {
			out = append(out, Of(sum/float64(window)))
		} else {
			out = append(out, Undefined())
		}
	}
	return out
}

// EMA computes an exponential moving average with smoothing 2/(period+1),
// seeded with the first input value. Every output index is defined.
func EMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) == 0 {
		return nil
	}
	k := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	avg := 0.0
	for i, v := range values {
		if i == 0 {
			avg = v
		} else {
			avg = v*k + avg*(1-k)
		}
		out[i] = avg
	}
	return out
}

// WilderRSI computes Wilder's smoothed RSI. The seed average gain/loss is the
// simple mean of the first period deltas; afterwards the Wilder recurrence
// avg = (avg*(period-1) + new) / period applies. Output is undefined until
// period samples exist, and 100 whenever the average loss is zero.
func WilderRSI(closes []float64, period int) []Value {
	n := len(closes)
	out := make([]Value, n)
	if n == 0 || period <= 0 {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		gains[i] = math.Max(delta, 0)
		losses[i] = math.Max(-delta, 0)
	}

	if n <= period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = Of(rsiFrom(avgGain, avgLoss))

	for i := period + 1; i < n; i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		out[i] = Of(rsiFrom(avgGain, avgLoss))
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// RollingStd computes the moving population standard deviation over a window
// of exactly window elements, via running sum and sum of squares. Undefined
// until the window fills; variance is floored at zero against floating-point
// cancellation.
func RollingStd(values []float64, window int) []Value {
	out := make([]Value, len(values))
	if window <= 1 {
		return out
	}
	var s1, s2 float64
	for i, v := range values {
		s1 += v
		s2 += v * v
		if i >= window {
			old := values[i-window]
			s1 -= old
			s2 -= old * old
		}
		if i+1 >= window {
			mean := s1 / float64(window)
			variance := math.Max(s2/float64(window)-mean*mean, 0)
			out[i] = Of(math.Sqrt(variance))
		}
	}
	return out
}

// Bollinger computes the upper and lower bands sma ± k*std, aligned
// index-for-index with the input. A band is undefined wherever either the
// SMA or the rolling deviation is.
func Bollinger(closes []float64, window int, k float64) (upper, lower []Value) {
	mid := SMA(closes, window)
	dev := RollingStd(closes, window)
	upper = make([]Value, len(closes))
	lower = make([]Value, len(closes))
	for i := range closes {
		if !mid[i].Valid || !dev[i].Valid {
			continue
		}
		upper[i] = Of(mid[i].V + k*dev[i].V)
		lower[i] = Of(mid[i].V - k*dev[i].V)
	}
	return upper, lower
}

// MACD computes the MACD line (fast EMA minus slow EMA), its signal line
// (EMA of the MACD line) and the histogram (line minus signal). The three
// series are truncated to the shorter of line/signal before subtracting.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	n := min(len(emaFast), len(emaSlow))
	line = make([]float64, n)
	for i := 0; i < n; i++ {
		line[i] = emaFast[i] - emaSlow[i]
	}

	sig = EMA(line, signal)

	n = min(len(line), len(sig))
	line = line[len(line)-n:]
	sig = sig[len(sig)-n:]
	hist = make([]float64, n)
	for i := 0; i < n; i++ {
		hist[i] = line[i] - sig[i]
	}
	return line, sig, hist
}
