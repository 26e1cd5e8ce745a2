package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"fundsim/types"
)

// ComputeMetrics derives the performance record from a completed value
// trajectory and the realized trade log. It is a pure function: nothing is
// mutated and calling it twice on the same inputs yields the same result.
//
// Ratios that are undefined for the input (zero volatility, no downside, no
// closed trades) report as 0 rather than NaN or infinity, so downstream
// formatting never needs special cases.
func ComputeMetrics(trajectory []types.DailySnapshot, trades []types.TradeRecord, cfg Config) (types.MetricsResult, error) {
	if len(trajectory) < 2 {
		return types.MetricsResult{}, fmt.Errorf("%w: need at least 2 snapshots, got %d",
			ErrInsufficientData, len(trajectory))
	}

	values := make([]float64, len(trajectory))
	for i, snap := range trajectory {
		values[i] = snap.TotalValue.InexactFloat64()
	}

	returns := dailyReturns(values)
	dailyRiskFree := cfg.AnnualRiskFreeRate / float64(cfg.TradingDaysPerYear)
	annualize := math.Sqrt(float64(cfg.TradingDaysPerYear))

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - dailyRiskFree
	}

	result := types.MetricsResult{
		TotalReturn:  values[len(values)-1]/values[0] - 1,
		SharpeRatio:  sharpe(excess, annualize),
		SortinoRatio: sortino(excess, annualize),
		MaxDrawdown:  maxDrawdown(values),
	}

	result.TradeCount = len(trades)
	for _, trade := range trades {
		if trade.Side != types.SideTypeSell {
			continue
		}
		if trade.RealizedPnL.IsPositive() {
			result.WinCount++
		} else {
			result.LossCount++
		}
	}
	if closed := result.WinCount + result.LossCount; closed > 0 {
		result.WinRate = float64(result.WinCount) / float64(closed)
	}

	return result, nil
}

func dailyReturns(values []float64) []float64 {
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns = append(returns, values[i]/values[i-1]-1)
	}
	return returns
}

// sharpe annualizes mean excess return over its sample standard deviation.
func sharpe(excess []float64, annualize float64) float64 {
	if len(excess) < 2 {
		return 0
	}
	sd := stat.StdDev(excess, nil)
	if sd == 0 {
		return 0
	}
	return stat.Mean(excess, nil) / sd * annualize
}

// sortino uses downside deviation: the root mean square of negative excess
// returns over the full sample. No downside at all reports 0.
func sortino(excess []float64, annualize float64) float64 {
	var downsideSq float64
	for _, e := range excess {
		if e < 0 {
			downsideSq += e * e
		}
	}
	if downsideSq == 0 {
		return 0
	}
	downsideDev := math.Sqrt(downsideSq / float64(len(excess)))
	return stat.Mean(excess, nil) / downsideDev * annualize
}

// maxDrawdown is the largest peak-to-trough decline relative to the running
// peak, as a positive fraction.
func maxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}
