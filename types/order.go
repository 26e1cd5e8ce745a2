package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)

// Order is a concrete sized trade for one symbol, executed once on the day it
// was created and never persisted beyond it.
type Order struct {
	Symbol    string
	Side      Side
	Quantity  int64
	Price     decimal.Decimal
	Reason    string
	CreatedAt time.Time
}

func NewOrder(
	symbol string,
	side Side,
	quantity int64,
	price decimal.Decimal,
	reason string,
	createdAt time.Time,
) Order {
	return Order{
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Reason:    reason,
		CreatedAt: createdAt,
	}
}

// TradeRecord is an executed order as recorded in the ledger's trade log.
// RealizedPnL is only meaningful for SELL entries.
type TradeRecord struct {
	Symbol      string
	Side        Side
	Quantity    int64
	Price       decimal.Decimal
	Date        time.Time
	RealizedPnL decimal.Decimal
}
