package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPriceTableTradingDates(t *testing.T) {
	table := NewPriceTable()
	// Inserted out of order; the table keeps dates sorted.
	table.Add(day(5), "AAPL", decimal.NewFromInt(105))
	table.Add(day(1), "AAPL", decimal.NewFromInt(101))
	table.Add(day(3), "AAPL", decimal.NewFromInt(103))

	got := table.TradingDates(day(1), day(5))
	want := []time.Time{day(1), day(3), day(5)}
	if len(got) != len(want) {
		t.Fatalf("TradingDates() returned %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("date[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// Range filtering is inclusive on both ends.
	if got := table.TradingDates(day(3), day(5)); len(got) != 2 || !got[0].Equal(day(3)) {
		t.Errorf("TradingDates(3,5) = %v, want [day3 day5]", got)
	}
	if got := table.TradingDates(day(10), day(20)); got != nil {
		t.Errorf("TradingDates outside range = %v, want nil", got)
	}
}

func TestPriceTablePrice(t *testing.T) {
	table := NewPriceTable()
	table.Add(day(1), "AAPL", decimal.NewFromInt(100))

	if price, ok := table.Price(day(1), "AAPL"); !ok || !price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Price(day1, AAPL) = %s, %v; want 100, true", price, ok)
	}
	if _, ok := table.Price(day(1), "MSFT"); ok {
		t.Error("Price for an unknown symbol reported ok")
	}
	if _, ok := table.Price(day(2), "AAPL"); ok {
		t.Error("Price for an unknown date reported ok")
	}

	// Intraday timestamps resolve to the same UTC day.
	noon := day(1).Add(12 * time.Hour)
	if _, ok := table.Price(noon, "AAPL"); !ok {
		t.Error("Price did not truncate an intraday timestamp to its day")
	}
}

func TestPriceTableHistory(t *testing.T) {
	table := NewPriceTable()
	for d := 1; d <= 6; d++ {
		table.Add(day(d), "AAPL", decimal.NewFromInt(int64(100+d)))
	}
	// MSFT has a gap on day 3.
	table.Add(day(2), "MSFT", decimal.NewFromInt(50))
	table.Add(day(4), "MSFT", decimal.NewFromInt(52))

	got := table.History("AAPL", day(4), 3)
	want := []int64{102, 103, 104}
	if len(got) != len(want) {
		t.Fatalf("History() length = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if !got[i].Equal(decimal.NewFromInt(w)) {
			t.Errorf("History()[%d] = %s, want %d", i, got[i], w)
		}
	}

	// Fewer closes than the lookback returns what exists.
	if got := table.History("AAPL", day(2), 10); len(got) != 2 {
		t.Errorf("short History() length = %d, want 2", len(got))
	}
	// Gaps are skipped rather than zero-filled.
	if got := table.History("MSFT", day(6), 10); len(got) != 2 {
		t.Errorf("gapped History() length = %d, want 2", len(got))
	}
	if got := table.History("TSLA", day(6), 10); got != nil {
		t.Errorf("History() for unknown symbol = %v, want nil", got)
	}
}

func TestPriceTableHasSymbol(t *testing.T) {
	table := NewPriceTable()
	table.Add(day(1), "AAPL", decimal.NewFromInt(100))

	if !table.HasSymbol("AAPL") {
		t.Error("HasSymbol(AAPL) = false, want true")
	}
	if table.HasSymbol("MSFT") {
		t.Error("HasSymbol(MSFT) = true, want false")
	}
}
