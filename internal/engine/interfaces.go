package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"fundsim/types"
)

// PriceProvider supplies already-loaded daily prices. Implementations must be
// fully in memory for the run: the loop never blocks on I/O mid-simulation.
type PriceProvider interface {
	// TradingDates returns the chronological trading dates within [start, end]
	// for which any price data exists.
	TradingDates(start, end time.Time) []time.Time
	// Price returns the price for a symbol on a date, or false if absent.
	Price(date time.Time, symbol string) (decimal.Decimal, bool)
}

// SignalProvider supplies that day's advisory signals for one symbol. An
// empty result is a valid, frequent outcome and is treated as HOLD.
// Implementations may be called concurrently for different symbols.
type SignalProvider interface {
	Signals(date time.Time, symbol string) []types.Signal
}
