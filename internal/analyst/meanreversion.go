package analyst

import (
	"time"

	"github.com/markcheno/go-talib"

	"fundsim/types"
)

// MeanReversion signals on RSI extremes: oversold argues for BUY, overbought
// for SELL. Confidence grows the deeper the reading sits in its extreme band.
type MeanReversion struct {
	period     int
	oversold   float64
	overbought float64
}

func NewMeanReversion(period int) *MeanReversion {
	return &MeanReversion{
		period:     period,
		oversold:   30,
		overbought: 70,
	}
}

func (m *MeanReversion) Name() string { return "mean-reversion" }

func (m *MeanReversion) Analyze(date time.Time, symbol string, closes []float64) types.Signal {
	// Rsi needs period+1 points for the first reading.
	if len(closes) <= m.period {
		return hold(symbol, m.Name(), date)
	}

	rsi := talib.Rsi(closes, m.period)
	last := rsi[len(rsi)-1]

	switch {
	case last < m.oversold:
		confidence := clamp01(0.5 + (m.oversold-last)/(2*m.oversold))
		return types.NewSignal(symbol, types.DirectionBuy, confidence, m.Name(), date)
	case last > m.overbought:
		confidence := clamp01(0.5 + (last-m.overbought)/(2*(100-m.overbought)))
		return types.NewSignal(symbol, types.DirectionSell, confidence, m.Name(), date)
	}
	return hold(symbol, m.Name(), date)
}
