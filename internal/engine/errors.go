package engine

import (
	"errors"
	"fmt"

	"fundsim/types"
)

// Global error declarations.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNoTradingDates   = errors.New("no trading dates available in range")
	ErrInsufficientData = errors.New("insufficient data")
)

// ValidationError reports an order that failed re-validation at execution
// time. The order is rejected and recorded; the run continues.
type ValidationError struct {
	Order  types.Order
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("order rejected: %s %s %d @ %s: %s",
		e.Order.Side, e.Order.Symbol, e.Order.Quantity, e.Order.Price, e.Reason)
}

// RejectedOrder is a ledger log entry for an order that failed validation.
type RejectedOrder struct {
	Order  types.Order
	Reason string
}
