package broker

import (
	"math"

	"github.com/rustyeddy/autotrade/internal/id"
)

// dustEpsilon is the quantity below which a position is snapped flat so that
// floating-point remainders never leave a stale cost basis behind.
const dustEpsilon = 1e-12

// PaperBroker simulates immediate full fills at a slipped reference price.
// It never rejects an order; risk screening is strictly the risk gate's job.
type PaperBroker struct {
	FeeRate  float64
	Slippage float64
}

// NewPaperBroker builds a broker with the given fee rate and slippage, both
// expressed as fractions of notional/price.
func NewPaperBroker(feeRate, slippage float64) *PaperBroker {
	return &PaperBroker{FeeRate: feeRate, Slippage: slippage}
}

// Fill executes every intent in order at a single slipped price and mutates
// the portfolio accordingly, returning one Fill per intent.
//
// The slippage direction is keyed off the side of the first order and shared
// by the whole batch, so a mixed-side batch fills at one price. That is the
// contracted behavior; do not "fix" it per-order without a product decision.
func (b *PaperBroker) Fill(orders []Intent, price float64, pf *Portfolio, ts int64) []Fill {
	if len(orders) == 0 {
		return nil
	}

	px := price * (1 - b.Slippage)
	if orders[0].Side == Buy {
		px = price * (1 + b.Slippage)
	}

	fills := make([]Fill, 0, len(orders))
	for _, o := range orders {
		notional := px * o.Qty
		fee := math.Abs(notional) * b.FeeRate

		if o.Side == Buy {
			newQty := pf.Pos.Qty + o.Qty
			if newQty <= 0 {
				pf.Pos = Position{}
			} else {
				// New average = (held value + new notional) / total quantity.
				pf.Pos.Avg = (pf.Pos.Qty*pf.Pos.Avg + notional) / newQty
				pf.Pos.Qty = newQty
			}
			pf.Cash -= notional + fee
		} else {
			pf.Cash += notional - fee
			pf.Pos.Qty -= o.Qty
			if pf.Pos.Qty <= dustEpsilon {
				pf.Pos = Position{}
			}
		}

		fills = append(fills, Fill{
			ID:     id.New(),
			Symbol: o.Symbol,
			Side:   o.Side,
			Qty:    o.Qty,
			Price:  px,
			TS:     ts,
		})
	}
	return fills
}
