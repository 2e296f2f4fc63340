package broker

// Position tracks held quantity and its weighted-average entry price. A flat
// position always carries a zero average cost.
type Position struct {
	Qty float64
	Avg float64
}

// Portfolio is the cash+position ledger for a single run. It is owned and
// mutated exclusively by the PaperBroker for the duration of a backtest.
type Portfolio struct {
	Cash float64
	Pos  Position
}

// NewPortfolio starts a flat portfolio with the given cash.
func NewPortfolio(cash float64) *Portfolio {
	return &Portfolio{Cash: cash}
}

// Equity marks the portfolio to market at the given price.
func (pf *Portfolio) Equity(price float64) float64 {
	return pf.Cash + pf.Pos.Qty*price
}
