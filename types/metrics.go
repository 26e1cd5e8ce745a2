package types

// MetricsResult holds the risk-adjusted performance statistics of a completed
// run. Every field is always populated; undefined ratios report as 0 so
// downstream formatting never needs null handling.
type MetricsResult struct {
	TotalReturn  float64
	SharpeRatio  float64
	SortinoRatio float64
	MaxDrawdown  float64
	TradeCount   int
	WinCount     int
	LossCount    int
	WinRate      float64
}
