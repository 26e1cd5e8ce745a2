package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"fundsim/types"
)

// Ledger is the sole owner and mutator of portfolio state: cash, open
// positions and the realized trade log. It is mutated only inside Execute,
// once per validated order, in submission order — later orders in a day see
// the cash and position effects of earlier ones.
//
// Execute re-validates the invariants the sizer aimed for. Sizing decisions
// can go stale when several orders are submitted against the same cash pool
// on one day, so the ledger is the final authority.
type Ledger struct {
	cash       decimal.Decimal
	positions  map[string]*types.Position
	trades     []types.TradeRecord
	rejections []RejectedOrder

	maxPositionFraction    decimal.Decimal
	minCashReserveFraction decimal.Decimal
}

func NewLedger(cfg Config) *Ledger {
	return &Ledger{
		cash:                   cfg.InitialCapital,
		positions:              make(map[string]*types.Position),
		maxPositionFraction:    decimal.NewFromFloat(cfg.MaxPositionFraction),
		minCashReserveFraction: decimal.NewFromFloat(cfg.MinCashReserveFraction),
	}
}

// MarkPrice updates the last known market price of a held symbol. Symbols
// without an open position are ignored; they have nothing to value.
func (l *Ledger) MarkPrice(symbol string, price decimal.Decimal) {
	if pos, ok := l.positions[symbol]; ok {
		pos.LastPrice = price
	}
}

// TotalValue is cash plus every position valued at its last known price.
func (l *Ledger) TotalValue() decimal.Decimal {
	total := l.cash
	for _, pos := range l.positions {
		total = total.Add(pos.MarketValue())
	}
	return total
}

// View returns a read-only copy of the current state.
func (l *Ledger) View(t time.Time) types.PortfolioView {
	view := types.PortfolioView{
		Cash:      l.cash,
		Positions: make(map[string]types.PositionSnapshot, len(l.positions)),
		Time:      t,
	}
	for sym, pos := range l.positions {
		view.Positions[sym] = types.PositionSnapshot{
			Symbol:    pos.Symbol,
			Quantity:  pos.Quantity,
			AvgCost:   pos.AvgCost,
			LastPrice: pos.LastPrice,
		}
	}
	return view
}

// Execute applies one order to the ledger. A *ValidationError return means
// the order was rejected and recorded; the ledger is unchanged and the run
// may continue.
func (l *Ledger) Execute(order types.Order) error {
	if order.Quantity <= 0 {
		return l.reject(order, "non-positive quantity")
	}

	switch order.Side {
	case types.SideTypeBuy:
		return l.executeBuy(order)
	case types.SideTypeSell:
		return l.executeSell(order)
	}
	return l.reject(order, "unknown order side")
}

func (l *Ledger) executeBuy(order types.Order) error {
	quantity := decimal.NewFromInt(order.Quantity)
	cost := order.Price.Mul(quantity)

	newCash := l.cash.Sub(cost)
	if newCash.IsNegative() {
		return l.reject(order, "insufficient cash")
	}

	// A buy converts cash to stock at the execution price, so total value at
	// order time is unchanged by the trade itself.
	total := l.TotalValue()
	if newCash.LessThan(total.Mul(l.minCashReserveFraction)) {
		return l.reject(order, "cash reserve breached")
	}

	var existingQty int64
	if pos, ok := l.positions[order.Symbol]; ok {
		existingQty = pos.Quantity
	}
	newPositionValue := order.Price.Mul(decimal.NewFromInt(existingQty + order.Quantity))
	if newPositionValue.GreaterThan(total.Mul(l.maxPositionFraction)) {
		return l.reject(order, "position limit exceeded")
	}

	l.cash = newCash
	pos, ok := l.positions[order.Symbol]
	if !ok {
		pos = &types.Position{Symbol: order.Symbol}
		l.positions[order.Symbol] = pos
	}
	pos.AvgCost = weightedAvgCost(pos.AvgCost, pos.Quantity, order.Price, order.Quantity)
	pos.Quantity += order.Quantity
	pos.LastPrice = order.Price

	l.trades = append(l.trades, types.TradeRecord{
		Symbol:   order.Symbol,
		Side:     order.Side,
		Quantity: order.Quantity,
		Price:    order.Price,
		Date:     order.CreatedAt,
	})
	return nil
}

func (l *Ledger) executeSell(order types.Order) error {
	pos, ok := l.positions[order.Symbol]
	if !ok || pos.Quantity < order.Quantity {
		return l.reject(order, "insufficient position")
	}

	quantity := decimal.NewFromInt(order.Quantity)
	proceeds := order.Price.Mul(quantity)
	realized := order.Price.Sub(pos.AvgCost).Mul(quantity)

	l.cash = l.cash.Add(proceeds)
	pos.Quantity -= order.Quantity
	pos.LastPrice = order.Price
	if pos.Quantity == 0 {
		delete(l.positions, order.Symbol)
	}

	l.trades = append(l.trades, types.TradeRecord{
		Symbol:      order.Symbol,
		Side:        order.Side,
		Quantity:    order.Quantity,
		Price:       order.Price,
		Date:        order.CreatedAt,
		RealizedPnL: realized,
	})
	return nil
}

func (l *Ledger) reject(order types.Order, reason string) error {
	l.rejections = append(l.rejections, RejectedOrder{Order: order, Reason: reason})
	return &ValidationError{Order: order, Reason: reason}
}

// Trades returns the realized trade log in execution order.
func (l *Ledger) Trades() []types.TradeRecord {
	out := make([]types.TradeRecord, len(l.trades))
	copy(out, l.trades)
	return out
}

// Rejections returns every order rejected at execution time.
func (l *Ledger) Rejections() []RejectedOrder {
	out := make([]RejectedOrder, len(l.rejections))
	copy(out, l.rejections)
	return out
}

func weightedAvgCost(existingAvg decimal.Decimal, existingQty int64, price decimal.Decimal, addQty int64) decimal.Decimal {
	if existingQty == 0 {
		return price
	}
	oldQty := decimal.NewFromInt(existingQty)
	newQty := decimal.NewFromInt(addQty)
	return existingAvg.Mul(oldQty).
		Add(price.Mul(newQty)).
		Div(oldQty.Add(newQty))
}
