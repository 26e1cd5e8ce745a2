package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a current holding: whole shares plus the weighted average cost
// paid for them. LastPrice is the most recent known market price.
type Position struct {
	Symbol    string
	Quantity  int64
	AvgCost   decimal.Decimal
	LastPrice decimal.Decimal
}

// MarketValue values the position at its last known price.
func (p Position) MarketValue() decimal.Decimal {
	return p.LastPrice.Mul(decimal.NewFromInt(p.Quantity))
}

// PortfolioView is a read-only copy of the ledger state handed to sizing and
// reporting code.
type PortfolioView struct {
	Cash      decimal.Decimal
	Positions map[string]PositionSnapshot
	Time      time.Time
}

type PositionSnapshot struct {
	Symbol    string
	Quantity  int64
	AvgCost   decimal.Decimal
	LastPrice decimal.Decimal
}

func (s PositionSnapshot) MarketValue() decimal.Decimal {
	return s.LastPrice.Mul(decimal.NewFromInt(s.Quantity))
}

// TotalValue is cash plus the market value of every position at its last
// known price.
func (v PortfolioView) TotalValue() decimal.Decimal {
	total := v.Cash
	for _, pos := range v.Positions {
		total = total.Add(pos.MarketValue())
	}
	return total
}

// DailySnapshot records the portfolio at the end of one trading day.
// Snapshots are immutable once appended to the trajectory.
type DailySnapshot struct {
	Date         time.Time
	TotalValue   decimal.Decimal
	Cash         decimal.Decimal
	MarketValues map[string]decimal.Decimal
}
