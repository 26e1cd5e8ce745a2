package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTable is an in-memory PriceProvider keyed by day and symbol. The data
// layer fills it once before a run; the table is immutable afterwards.
type PriceTable struct {
	dates  []time.Time
	prices map[int64]map[string]decimal.Decimal
}

func NewPriceTable() *PriceTable {
	return &PriceTable{
		prices: make(map[int64]map[string]decimal.Decimal),
	}
}

func dayKey(date time.Time) int64 {
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// Add records a price for a symbol on a date. Dates are truncated to UTC days.
func (t *PriceTable) Add(date time.Time, symbol string, price decimal.Decimal) {
	key := dayKey(date)
	day, ok := t.prices[key]
	if !ok {
		day = make(map[string]decimal.Decimal)
		t.prices[key] = day
		t.dates = append(t.dates, time.Unix(key, 0).UTC())
		sort.Slice(t.dates, func(i, j int) bool { return t.dates[i].Before(t.dates[j]) })
	}
	day[symbol] = price
}

func (t *PriceTable) TradingDates(start, end time.Time) []time.Time {
	var out []time.Time
	for _, d := range t.dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (t *PriceTable) Price(date time.Time, symbol string) (decimal.Decimal, bool) {
	day, ok := t.prices[dayKey(date)]
	if !ok {
		return decimal.Zero, false
	}
	price, ok := day[symbol]
	return price, ok
}

// History returns up to lookback closing prices for a symbol, oldest first,
// ending at the last trading date on or before through. Dates with no price
// for the symbol are skipped.
func (t *PriceTable) History(symbol string, through time.Time, lookback int) []decimal.Decimal {
	var closes []decimal.Decimal
	for _, d := range t.dates {
		if d.After(through) {
			break
		}
		if price, ok := t.prices[dayKey(d)][symbol]; ok {
			closes = append(closes, price)
		}
	}
	if lookback > 0 && len(closes) > lookback {
		closes = closes[len(closes)-lookback:]
	}
	return closes
}

// HasSymbol reports whether any date in the table carries a price for symbol.
func (t *PriceTable) HasSymbol(symbol string) bool {
	for _, day := range t.prices {
		if _, ok := day[symbol]; ok {
			return true
		}
	}
	return false
}
