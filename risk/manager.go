// Package risk screens order intents against exposure limits before they
// reach execution.
package risk

import (
	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/autotrade/broker"
)

// Limits configures the gate. Zero values disable the corresponding check.
type Limits struct {
	MaxOrders   int     `yaml:"max_orders"`
	Cooldown    float64 `yaml:"cooldown_s"` // seconds between accepted orders
	MinQty      float64 `yaml:"min_qty"`
	MinNotional float64 `yaml:"min_notional"`
	// Loss limits are fractions of run-start equity; breaching one halts the
	// whole batch, not just the triggering order.
	MaxDailyLoss      float64 `yaml:"max_daily_loss"`
	MaxUnrealizedLoss float64 `yaml:"max_unrealized_loss"`
}

// State is the mutable side of the gate. It persists for a whole run and is
// reset only at run start.
type State struct {
	Orders         int
	LastOrderTime  float64
	RunStartEquity float64
	CurrentEquity  float64
	started        bool
	haveLast       bool
}

// Manager validates batches of intents in order, tracking accepted-order
// counts and timing across the run.
type Manager struct {
	limits Limits
	state  State
}

// NewManager builds a gate with the given limits and a fresh state.
func NewManager(limits Limits) *Manager {
	return &Manager{limits: limits}
}

// Reset clears the run state and pins the run-start equity the loss limits
// are measured against. Call exactly once per run, before the first Validate.
func (m *Manager) Reset(startEquity float64) {
	m.state = State{
		RunStartEquity: startEquity,
		CurrentEquity:  startEquity,
		started:        startEquity > 0,
	}
}

// UpdateEquity records the latest mark-to-market equity.
func (m *Manager) UpdateEquity(equity float64) {
	m.state.CurrentEquity = equity
	if !m.state.started && equity > 0 {
		// A gate that was never Reset measures losses from the first
		// equity it observes.
		m.state.RunStartEquity = equity
		m.state.started = true
	}
}

// State returns a copy of the current run state.
func (m *Manager) State() State { return m.state }

// Validate filters intents in order. now is unix seconds (fractions allowed)
// and drives the cooldown check. If a loss limit is breached the whole call
// returns nil, discarding every intent in the batch.
func (m *Manager) Validate(intents []broker.Intent, now float64) []broker.Intent {
	if len(intents) == 0 {
		return nil
	}

	if m.state.started && m.state.RunStartEquity > 0 {
		dd := m.state.CurrentEquity/m.state.RunStartEquity - 1.0
		if m.limits.MaxDailyLoss > 0 && dd <= -m.limits.MaxDailyLoss {
			log.Warn().
				Float64("drawdown", dd).
				Float64("limit", m.limits.MaxDailyLoss).
				Msg("orders rejected: daily loss limit reached, halting batch")
			return nil
		}
		if m.limits.MaxUnrealizedLoss > 0 && dd <= -m.limits.MaxUnrealizedLoss {
			log.Warn().
				Float64("drawdown", dd).
				Float64("limit", m.limits.MaxUnrealizedLoss).
				Msg("orders rejected: unrealized loss limit reached, halting batch")
			return nil
		}
	}

	var allowed []broker.Intent
	for _, o := range intents {
		if m.limits.MaxOrders > 0 && m.state.Orders >= m.limits.MaxOrders {
			log.Warn().Str("symbol", o.Symbol).Msg("order rejected: max order limit reached")
			continue
		}
		if m.limits.Cooldown > 0 && m.state.haveLast &&
			now-m.state.LastOrderTime < m.limits.Cooldown {
			log.Warn().Str("symbol", o.Symbol).Msg("order rejected: cooldown in effect")
			continue
		}
		if m.limits.MinQty > 0 && o.Qty < m.limits.MinQty {
			log.Warn().Str("symbol", o.Symbol).Float64("qty", o.Qty).
				Msg("order rejected: below minimum quantity")
			continue
		}
		// The gate does not know prices, so the notional floor compares the
		// raw quantity. Callers wanting an exact notional check must price
		// the intent themselves.
		if m.limits.MinNotional > 0 && o.Qty < m.limits.MinNotional {
			log.Warn().Str("symbol", o.Symbol).Float64("qty", o.Qty).
				Msg("order rejected: below minimum notional")
			continue
		}

		allowed = append(allowed, o)
		m.state.Orders++
		m.state.LastOrderTime = now
		m.state.haveLast = true
	}
	return allowed
}
