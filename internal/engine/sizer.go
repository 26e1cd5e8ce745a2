package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fundsim/types"
)

// Sizer turns a consensus decision into a concrete order within the
// configured risk limits. It performs no data lookup: the caller resolves the
// day's execution price. "No order" is a normal, frequent outcome and is
// signalled by the false return, never by a zero-quantity order.
type Sizer struct {
	maxPositionFraction    decimal.Decimal
	minCashReserveFraction decimal.Decimal
	minConfidence          float64
}

func NewSizer(cfg Config) *Sizer {
	return &Sizer{
		maxPositionFraction:    decimal.NewFromFloat(cfg.MaxPositionFraction),
		minCashReserveFraction: decimal.NewFromFloat(cfg.MinCashReserveFraction),
		minConfidence:          cfg.MinConfidence,
	}
}

// Size produces an order for the decision against a read-only view of the
// portfolio, or false when no valid order exists. The confidence threshold is
// inclusive: a decision exactly at the minimum still trades.
func (s *Sizer) Size(decision types.ConsensusDecision, view types.PortfolioView, price decimal.Decimal, date time.Time) (types.Order, bool) {
	if decision.Direction == types.DirectionHold || decision.Confidence < s.minConfidence {
		return types.Order{}, false
	}
	if !price.IsPositive() {
		return types.Order{}, false
	}

	switch decision.Direction {
	case types.DirectionBuy:
		return s.sizeBuy(decision, view, price, date)
	case types.DirectionSell:
		return s.sizeSell(decision, view, price, date)
	}
	return types.Order{}, false
}

func (s *Sizer) sizeBuy(decision types.ConsensusDecision, view types.PortfolioView, price decimal.Decimal, date time.Time) (types.Order, bool) {
	total := view.TotalValue()
	confidence := decimal.NewFromFloat(decision.Confidence)

	// Target exposure scales with consensus confidence, up to the position cap.
	target := total.Mul(s.maxPositionFraction).Mul(confidence)
	spend := target.Sub(view.Positions[decision.Symbol].MarketValue())

	// Cap so that cash after the buy stays above the reserve.
	available := view.Cash.Sub(total.Mul(s.minCashReserveFraction))
	if spend.GreaterThan(available) {
		spend = available
	}

	quantity := spend.Div(price).Floor().IntPart()
	if quantity <= 0 {
		return types.Order{}, false
	}

	reason := fmt.Sprintf("consensus BUY, confidence %.2f", decision.Confidence)
	return types.NewOrder(decision.Symbol, types.SideTypeBuy, quantity, price, reason, date), true
}

func (s *Sizer) sizeSell(decision types.ConsensusDecision, view types.PortfolioView, price decimal.Decimal, date time.Time) (types.Order, bool) {
	pos, ok := view.Positions[decision.Symbol]
	if !ok || pos.Quantity <= 0 {
		return types.Order{}, false
	}
	if decision.Confidence <= 0 {
		return types.Order{}, false
	}

	quantity := decimal.NewFromFloat(decision.Confidence).
		Mul(decimal.NewFromInt(pos.Quantity)).
		Floor().IntPart()
	if quantity < 1 {
		quantity = 1
	}
	if quantity > pos.Quantity {
		quantity = pos.Quantity
	}

	reason := fmt.Sprintf("consensus SELL, confidence %.2f", decision.Confidence)
	return types.NewOrder(decision.Symbol, types.SideTypeSell, quantity, price, reason, date), true
}
