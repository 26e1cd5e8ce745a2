package engine

import (
	"fundsim/types"
)

// Aggregate combines one day's analyst signals for a symbol into a single
// consensus decision. The winning direction is the one with the greater sum
// of confidence among non-HOLD signals; HOLD signals never carry weight. A
// tie, or no non-HOLD signals at all, resolves to HOLD with confidence 0.
// The consensus confidence is the mean confidence of the signals supporting
// the winning direction, clamped to [0,1].
//
// The aggregation is sum/mean based, so any permutation of the input yields
// the same decision.
func Aggregate(symbol string, signals []types.Signal) types.ConsensusDecision {
	var buySum, sellSum float64
	var buyCount, sellCount int

	for _, sig := range signals {
		switch sig.Direction {
		case types.DirectionBuy:
			buySum += sig.Confidence
			buyCount++
		case types.DirectionSell:
			sellSum += sig.Confidence
			sellCount++
		}
	}

	if buySum == sellSum {
		// Covers the all-HOLD case (both sums zero) and exact ties.
		return types.ConsensusDecision{Symbol: symbol, Direction: types.DirectionHold}
	}

	direction := types.DirectionBuy
	sum, count := buySum, buyCount
	if sellSum > buySum {
		direction = types.DirectionSell
		sum, count = sellSum, sellCount
	}

	confidence := sum / float64(count)
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}

	return types.ConsensusDecision{
		Symbol:     symbol,
		Direction:  direction,
		Confidence: confidence,
	}
}
