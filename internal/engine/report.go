package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"fundsim/types"
)

// RenderReport prints the run's performance record as a console table.
func RenderReport(w io.Writer, metrics types.MetricsResult, result *RunResult, cfg Config) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("BACKTEST REPORT")
	t.SetStyle(table.StyleRounded)

	first := result.Trajectory[0]
	last := result.Trajectory[len(result.Trajectory)-1]

	t.AppendRows([]table.Row{
		{"Period", fmt.Sprintf("%s to %s", first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))},
		{"Trading Days", len(result.Trajectory)},
		{"Initial Capital", cfg.InitialCapital.StringFixed(2)},
		{"Final Value", last.TotalValue.StringFixed(2)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Total Return", fmt.Sprintf("%+.2f%%", metrics.TotalReturn*100)},
		{"Sharpe Ratio", fmt.Sprintf("%.3f", metrics.SharpeRatio)},
		{"Sortino Ratio", fmt.Sprintf("%.3f", metrics.SortinoRatio)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", metrics.MaxDrawdown*100)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Trades", metrics.TradeCount},
		{"Wins / Losses", fmt.Sprintf("%d / %d", metrics.WinCount, metrics.LossCount)},
		{"Win Rate", fmt.Sprintf("%.1f%%", metrics.WinRate*100)},
		{"Rejected Orders", len(result.Rejections)},
	})

	t.Render()
}

// WriteTrajectoryCSV writes the daily value trajectory to any io.Writer.
func WriteTrajectoryCSV(w io.Writer, trajectory []types.DailySnapshot) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "total_value", "cash"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, snap := range trajectory {
		record := []string{
			snap.Date.Format("2006-01-02"),
			snap.TotalValue.String(),
			snap.Cash.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteTradesCSV writes the realized trade log to any io.Writer.
func WriteTradesCSV(w io.Writer, trades []types.TradeRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"date",
		"symbol",
		"side",
		"quantity",
		"price",
		"realized_pnl",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, trade := range trades {
		record := []string{
			trade.Date.Format(time.RFC3339),
			trade.Symbol,
			string(trade.Side),
			fmt.Sprintf("%d", trade.Quantity),
			trade.Price.String(),
			trade.RealizedPnL.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
