package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Config is the full configuration surface of a single backtest run. It is an
// explicit value passed into the Simulator; there is no process-wide state.
type Config struct {
	InitialCapital decimal.Decimal
	Symbols        []string
	Start          time.Time
	End            time.Time

	// Risk limits, as fractions of total portfolio value at order time.
	MaxPositionFraction    float64
	MinCashReserveFraction float64

	// Consensus decisions below this confidence produce no order. The
	// threshold is inclusive.
	MinConfidence float64

	AnnualRiskFreeRate float64
	TradingDaysPerYear int
}

// NewConfig returns a Config with the standard risk defaults: 30% max
// position, 10% cash reserve, 2% annual risk-free rate, 252 trading days.
func NewConfig(initialCapital decimal.Decimal, symbols []string, start, end time.Time) Config {
	return Config{
		InitialCapital:         initialCapital,
		Symbols:                symbols,
		Start:                  start,
		End:                    end,
		MaxPositionFraction:    0.3,
		MinCashReserveFraction: 0.1,
		MinConfidence:          0.2,
		AnnualRiskFreeRate:     0.02,
		TradingDaysPerYear:     252,
	}
}

// Validate checks the configuration before a run starts. Any violation is
// fatal to the run.
func (c Config) Validate() error {
	if !c.InitialCapital.IsPositive() {
		return fmt.Errorf("%w: initial capital must be positive, got %s", ErrInvalidConfig, c.InitialCapital)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("%w: symbol universe is empty", ErrInvalidConfig)
	}
	if c.Start.After(c.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidConfig,
			c.Start.Format("2006-01-02"), c.End.Format("2006-01-02"))
	}
	if c.MaxPositionFraction <= 0 || c.MaxPositionFraction > 1 {
		return fmt.Errorf("%w: max position fraction must be in (0,1], got %v", ErrInvalidConfig, c.MaxPositionFraction)
	}
	if c.MinCashReserveFraction < 0 || c.MinCashReserveFraction >= 1 {
		return fmt.Errorf("%w: cash reserve fraction must be in [0,1), got %v", ErrInvalidConfig, c.MinCashReserveFraction)
	}
	if c.MaxPositionFraction <= c.MinCashReserveFraction {
		return fmt.Errorf("%w: max position fraction %v must exceed cash reserve fraction %v, no buy could ever satisfy both",
			ErrInvalidConfig, c.MaxPositionFraction, c.MinCashReserveFraction)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence must be in [0,1], got %v", ErrInvalidConfig, c.MinConfidence)
	}
	if c.TradingDaysPerYear <= 0 {
		return fmt.Errorf("%w: trading days per year must be positive, got %d", ErrInvalidConfig, c.TradingDaysPerYear)
	}
	return nil
}
