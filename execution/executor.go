// Package execution submits risk-screened order intents to an exchange
// client. It is the live-facing twin of the backtest loop and carries no
// retry or scheduling logic of its own.
package execution

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/exchange"
	"github.com/rustyeddy/autotrade/risk"
)

// Executor routes intents through a risk gate and into an exchange client.
type Executor struct {
	Exchange exchange.Client
	Risk     *risk.Manager

	// now is swapped in tests to control the cooldown clock.
	now func() time.Time
}

// NewExecutor wires a gate in front of an exchange client.
func NewExecutor(ex exchange.Client, rm *risk.Manager) *Executor {
	return &Executor{Exchange: ex, Risk: rm, now: time.Now}
}

// UpdateEquity forwards the latest equity mark to the risk gate.
func (e *Executor) UpdateEquity(equity float64) {
	if e.Risk != nil {
		e.Risk.UpdateEquity(equity)
	}
}

// Submit validates the batch and places each accepted intent, returning the
// resulting fills. The first exchange error aborts the remainder.
func (e *Executor) Submit(ctx context.Context, intents []broker.Intent) ([]broker.Fill, error) {
	accepted := intents
	if e.Risk != nil {
		now := float64(e.now().UnixNano()) / float64(time.Second)
		accepted = e.Risk.Validate(intents, now)
	}

	fills := make([]broker.Fill, 0, len(accepted))
	for _, o := range accepted {
		fill, err := e.Exchange.CreateOrder(ctx, o)
		if err != nil {
			return fills, err
		}
		log.Info().
			Str("id", fill.ID).
			Str("symbol", fill.Symbol).
			Str("side", string(fill.Side)).
			Float64("qty", fill.Qty).
			Float64("price", fill.Price).
			Msg("order executed")
		fills = append(fills, fill)
	}
	return fills, nil
}
