package exchange

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/internal/id"
	"github.com/rustyeddy/autotrade/market"
)

// Fake is a deterministic seeded random-walk exchange for demo runs and
// tests. The same seed always produces the same prices.
type Fake struct {
	mu    sync.Mutex
	rng   *rand.Rand
	price float64
	now   func() time.Time
}

// NewFake builds a fake exchange walking from basePrice under the given seed.
func NewFake(seed int64, basePrice float64) *Fake {
	return &Fake{
		rng:   rand.New(rand.NewSource(seed)),
		price: basePrice,
		now:   time.Now,
	}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) step() float64 {
	f.price *= 1.0 + (f.rng.Float64()*2-1)*0.001
	return f.price
}

func (f *Fake) GetTicker(ctx context.Context, symbol string) (Ticker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Ticker{Symbol: symbol, Price: f.step()}, nil
}

func (f *Fake) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	step, err := intervalSeconds(interval)
	if err != nil {
		return nil, err
	}

	out := make([]market.Candle, 0, limit)
	ts := f.now().Unix() - int64(limit)*step
	p := f.price
	for i := 0; i < limit; i++ {
		p *= 1.0 + (f.rng.Float64()*2-1)*0.002
		hi := p * (1 + f.rng.Float64()*0.001)
		lo := p * (1 - f.rng.Float64()*0.001)
		ts += step
		out = append(out, market.Candle{
			TS:     ts,
			Open:   (hi + lo) / 2,
			High:   hi,
			Low:    lo,
			Close:  p,
			Volume: 1 + f.rng.Float64()*9,
		})
	}
	return out, nil
}

func (f *Fake) CreateOrder(ctx context.Context, intent broker.Intent) (broker.Fill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return broker.Fill{
		ID:     id.New(),
		Symbol: intent.Symbol,
		Side:   intent.Side,
		Qty:    intent.Qty,
		Price:  f.step(),
		TS:     f.now().Unix(),
	}, nil
}

func intervalSeconds(interval string) (int64, error) {
	switch interval {
	case "1m", "":
		return 60, nil
	case "5m":
		return 300, nil
	case "15m":
		return 900, nil
	case "1h":
		return 3600, nil
	case "4h":
		return 4 * 3600, nil
	case "1d":
		return 24 * 3600, nil
	}
	return 0, fmt.Errorf("unsupported interval %q", interval)
}
