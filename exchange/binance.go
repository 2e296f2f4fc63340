package exchange

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adshao/go-binance/v2"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/market"
)

// Binance supplies candles and tickers from the Binance spot API. It is a
// data client only; order placement returns ErrLiveTrading.
type Binance struct {
	client *binance.Client
}

// NewBinance builds a client. Credentials may be empty for public market
// data endpoints.
func NewBinance(apiKey, secretKey string) *Binance {
	return &Binance{client: binance.NewClient(apiKey, secretKey)}
}

func (b *Binance) Name() string { return "binance" }

func (b *Binance) GetTicker(ctx context.Context, symbol string) (Ticker, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return Ticker{}, fmt.Errorf("binance ticker %s: %w", symbol, err)
	}
	if len(prices) == 0 {
		return Ticker{}, fmt.Errorf("binance ticker %s: no price returned", symbol)
	}
	p, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return Ticker{}, fmt.Errorf("binance ticker %s: parse price: %w", symbol, err)
	}
	return Ticker{Symbol: symbol, Price: p}, nil
}

func (b *Binance) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error) {
	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines %s %s: %w", symbol, interval, err)
	}

	out := make([]market.Candle, 0, len(klines))
	for _, k := range klines {
		c, err := klineToCandle(k)
		if err != nil {
			// One bad kline should not sink the batch.
			continue
		}
		out = append(out, c)
	}
	market.SortByTime(out)
	return out, nil
}

func (b *Binance) CreateOrder(ctx context.Context, intent broker.Intent) (broker.Fill, error) {
	return broker.Fill{}, ErrLiveTrading
}

func klineToCandle(k *binance.Kline) (market.Candle, error) {
	c := market.Candle{TS: k.OpenTime / 1000}
	for _, fld := range []struct {
		s   string
		dst *float64
	}{
		{k.Open, &c.Open},
		{k.High, &c.High},
		{k.Low, &c.Low},
		{k.Close, &c.Close},
		{k.Volume, &c.Volume},
	} {
		v, err := strconv.ParseFloat(fld.s, 64)
		if err != nil {
			return c, fmt.Errorf("parse kline field %q: %w", fld.s, err)
		}
		*fld.dst = v
	}
	return c, nil
}
