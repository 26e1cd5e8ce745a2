// Package analyst holds rule-based signal producers. Every producer
// implements the same capability — give an opinion for one symbol on one day
// — so the engine never knows which concrete analyst a signal came from.
package analyst

import (
	"time"

	"github.com/shopspring/decimal"

	"fundsim/types"
)

// Analyst produces one advisory signal from a symbol's closing-price history.
// Implementations must be pure: no state between calls, safe for concurrent
// use across symbols.
type Analyst interface {
	Name() string
	Analyze(date time.Time, symbol string, closes []float64) types.Signal
}

// HistorySource supplies closing-price history up to a date. The engine's
// PriceTable satisfies it.
type HistorySource interface {
	History(symbol string, through time.Time, lookback int) []decimal.Decimal
}

// Panel fans a day's analysis out across its analysts and collects their
// signals. It implements the engine's SignalProvider contract.
type Panel struct {
	history  HistorySource
	analysts []Analyst
	lookback int
}

func NewPanel(history HistorySource, lookback int, analysts ...Analyst) *Panel {
	return &Panel{
		history:  history,
		analysts: analysts,
		lookback: lookback,
	}
}

func (p *Panel) Signals(date time.Time, symbol string) []types.Signal {
	history := p.history.History(symbol, date, p.lookback)
	closes := make([]float64, len(history))
	for i, price := range history {
		closes[i] = price.InexactFloat64()
	}

	signals := make([]types.Signal, 0, len(p.analysts))
	for _, a := range p.analysts {
		signals = append(signals, a.Analyze(date, symbol, closes))
	}
	return signals
}

func hold(symbol, source string, date time.Time) types.Signal {
	return types.NewSignal(symbol, types.DirectionHold, 0, source, date)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
