package engine

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundsim/types"
)

func trajectoryOf(values ...float64) []types.DailySnapshot {
	snaps := make([]types.DailySnapshot, len(values))
	for i, v := range values {
		snaps[i] = types.DailySnapshot{
			Date:       day(i + 1),
			TotalValue: decimal.NewFromFloat(v),
			Cash:       decimal.NewFromFloat(v),
		}
	}
	return snaps
}

func sellRecord(pnl int64) types.TradeRecord {
	return types.TradeRecord{
		Symbol:      "AAPL",
		Side:        types.SideTypeSell,
		Quantity:    1,
		Price:       decimal.NewFromInt(100),
		Date:        day(1),
		RealizedPnL: decimal.NewFromInt(pnl),
	}
}

func metricsConfig(riskFree float64) Config {
	cfg := NewConfig(decimal.NewFromInt(100000), []string{"AAPL"}, day(1), day(3))
	cfg.AnnualRiskFreeRate = riskFree
	return cfg
}

func TestComputeMetrics_TooFewSnapshots(t *testing.T) {
	_, err := ComputeMetrics(trajectoryOf(100000), nil, metricsConfig(0.02))
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = ComputeMetrics(nil, nil, metricsConfig(0.02))
	require.ErrorIs(t, err, ErrInsufficientData)
}

// A flat trajectory has zero volatility: every ratio reports 0 instead of NaN.
func TestComputeMetrics_FlatSeries(t *testing.T) {
	got, err := ComputeMetrics(trajectoryOf(100000, 100000, 100000), nil, metricsConfig(0))
	require.NoError(t, err)

	assert.Zero(t, got.TotalReturn)
	assert.Zero(t, got.SharpeRatio)
	assert.Zero(t, got.SortinoRatio)
	assert.Zero(t, got.MaxDrawdown)
	assert.Zero(t, got.WinRate)
}

// Hand-computed reference: values 100, 110, 104.5 give daily returns
// +0.10 and -0.05. With a zero risk-free rate the mean excess return is
// 0.025, the sample stdev is 0.075*sqrt(2), and the only downside return
// contributes sqrt(0.0025/2) of downside deviation.
func TestComputeMetrics_KnownSeries(t *testing.T) {
	cfg := metricsConfig(0)

	got, err := ComputeMetrics(trajectoryOf(100, 110, 104.5), nil, cfg)
	require.NoError(t, err)

	wantSharpe := 0.025 / (0.075 * math.Sqrt2) * math.Sqrt(252)
	wantSortino := 0.025 / math.Sqrt(0.00125) * math.Sqrt(252)

	assert.InDelta(t, 0.045, got.TotalReturn, 1e-9)
	assert.InDelta(t, wantSharpe, got.SharpeRatio, 1e-9)
	assert.InDelta(t, wantSortino, got.SortinoRatio, 1e-9)
	assert.InDelta(t, 0.05, got.MaxDrawdown, 1e-9)
}

// A monotonically rising series has no downside returns, so Sortino is 0
// even though Sharpe is well defined.
func TestComputeMetrics_NoDownside(t *testing.T) {
	got, err := ComputeMetrics(trajectoryOf(100, 110, 122), nil, metricsConfig(0))
	require.NoError(t, err)

	assert.Positive(t, got.SharpeRatio)
	assert.Zero(t, got.SortinoRatio)
	assert.Zero(t, got.MaxDrawdown)
}

func TestComputeMetrics_RiskFreeShiftsExcess(t *testing.T) {
	withZero, err := ComputeMetrics(trajectoryOf(100, 110, 104.5), nil, metricsConfig(0))
	require.NoError(t, err)
	withRate, err := ComputeMetrics(trajectoryOf(100, 110, 104.5), nil, metricsConfig(0.02))
	require.NoError(t, err)

	// Subtracting a positive daily risk-free rate lowers the mean excess
	// return while the dispersion stays the same.
	assert.Less(t, withRate.SharpeRatio, withZero.SharpeRatio)
	assert.Equal(t, withZero.TotalReturn, withRate.TotalReturn)
	assert.Equal(t, withZero.MaxDrawdown, withRate.MaxDrawdown)
}

func TestComputeMetrics_DrawdownFromRunningPeak(t *testing.T) {
	// Peak 120, trough 90: drawdown 0.25 even though the series recovers.
	got, err := ComputeMetrics(trajectoryOf(100, 120, 90, 130), nil, metricsConfig(0))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got.MaxDrawdown, 1e-9)
}

func TestComputeMetrics_TradeCounts(t *testing.T) {
	buyRecord := types.TradeRecord{
		Symbol:   "AAPL",
		Side:     types.SideTypeBuy,
		Quantity: 10,
		Price:    decimal.NewFromInt(100),
		Date:     time.UnixMilli(0),
	}
	trades := []types.TradeRecord{
		buyRecord,
		sellRecord(150),
		sellRecord(-40),
		sellRecord(10),
		sellRecord(0), // break-even counts as a loss
	}

	got, err := ComputeMetrics(trajectoryOf(100000, 100100), trades, metricsConfig(0))
	require.NoError(t, err)

	assert.Equal(t, 5, got.TradeCount)
	assert.Equal(t, 2, got.WinCount)
	assert.Equal(t, 2, got.LossCount)
	assert.InDelta(t, 0.5, got.WinRate, 1e-9)
}

func TestComputeMetrics_NoClosedTrades(t *testing.T) {
	trades := []types.TradeRecord{{
		Symbol:   "AAPL",
		Side:     types.SideTypeBuy,
		Quantity: 10,
		Price:    decimal.NewFromInt(100),
	}}

	got, err := ComputeMetrics(trajectoryOf(100000, 100100), trades, metricsConfig(0))
	require.NoError(t, err)

	assert.Equal(t, 1, got.TradeCount)
	assert.Zero(t, got.WinCount)
	assert.Zero(t, got.LossCount)
	assert.Zero(t, got.WinRate)
}

func TestComputeMetrics_Deterministic(t *testing.T) {
	trajectory := trajectoryOf(100, 103, 101, 108, 105)
	trades := []types.TradeRecord{sellRecord(30), sellRecord(-10)}
	cfg := metricsConfig(0.02)

	first, err := ComputeMetrics(trajectory, trades, cfg)
	require.NoError(t, err)
	second, err := ComputeMetrics(trajectory, trades, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
