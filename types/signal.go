package types

import (
	"time"
)

type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
	DirectionHold Direction = "HOLD"
)

// Signal is a single analyst's advisory opinion for one symbol on one day.
// Confidence is in [0,1]. Source identifies the analyst that produced it.
type Signal struct {
	Symbol     string
	Direction  Direction
	Confidence float64
	Source     string
	Date       time.Time
}

func NewSignal(
	symbol string,
	direction Direction,
	confidence float64,
	source string,
	date time.Time,
) Signal {
	return Signal{
		Symbol:     symbol,
		Direction:  direction,
		Confidence: confidence,
		Source:     source,
		Date:       date,
	}
}

// ConsensusDecision is the combined decision for one symbol on one day,
// derived from all analyst signals for that symbol.
type ConsensusDecision struct {
	Symbol     string
	Direction  Direction
	Confidence float64
}
