package analyst

import (
	"time"

	"github.com/markcheno/go-talib"

	"fundsim/types"
)

// Momentum signals on a moving-average crossover: price trading above its
// slow SMA argues for BUY, below for SELL, with confidence scaled by the gap
// between the fast and slow averages.
type Momentum struct {
	fastPeriod int
	slowPeriod int
}

func NewMomentum(fastPeriod, slowPeriod int) *Momentum {
	return &Momentum{fastPeriod: fastPeriod, slowPeriod: slowPeriod}
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Analyze(date time.Time, symbol string, closes []float64) types.Signal {
	if len(closes) < m.slowPeriod {
		return hold(symbol, m.Name(), date)
	}

	fast := talib.Sma(closes, m.fastPeriod)
	slow := talib.Sma(closes, m.slowPeriod)
	lastFast := fast[len(fast)-1]
	lastSlow := slow[len(slow)-1]
	if lastSlow == 0 {
		return hold(symbol, m.Name(), date)
	}

	gap := (lastFast - lastSlow) / lastSlow
	// A 5% divergence between the averages counts as full conviction.
	confidence := clamp01(gap / 0.05)
	if gap < 0 {
		confidence = clamp01(-gap / 0.05)
	}

	switch {
	case gap > 0:
		return types.NewSignal(symbol, types.DirectionBuy, confidence, m.Name(), date)
	case gap < 0:
		return types.NewSignal(symbol, types.DirectionSell, confidence, m.Name(), date)
	}
	return hold(symbol, m.Name(), date)
}
