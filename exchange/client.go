// Package exchange holds the data-access boundary: clients that supply
// candles and tickers, and an order-submission hook for the live executor.
package exchange

import (
	"context"
	"errors"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/market"
)

// ErrLiveTrading is returned by clients that only supply market data.
var ErrLiveTrading = errors.New("exchange: live order placement not supported by this client")

// Ticker is the current price of one symbol.
type Ticker struct {
	Symbol string
	Price  float64
}

// Client is what the engine needs from an exchange. Implementations must
// return candles ascending by timestamp.
type Client interface {
	Name() string
	GetTicker(ctx context.Context, symbol string) (Ticker, error)
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error)
	CreateOrder(ctx context.Context, intent broker.Intent) (broker.Fill, error)
}
