package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fundsim/internal/engine"
)

const dailyClosesQuery = `
SELECT symbol, day, close
FROM daily_prices
WHERE symbol = ANY($1)
  AND day BETWEEN $2 AND $3
ORDER BY day, symbol`

// LoadPriceTable reads daily closes for the symbols in [start, end] into an
// in-memory table. The simulation never touches the database again after
// this returns.
func (db *Database) LoadPriceTable(ctx context.Context, symbols []string, start, end time.Time) (*engine.PriceTable, error) {
	rows, err := db.conn.Query(ctx, dailyClosesQuery, symbols, start, end)
	if err != nil {
		return nil, fmt.Errorf("query daily closes: %w", err)
	}
	defer rows.Close()

	table := engine.NewPriceTable()
	loaded := 0
	for rows.Next() {
		var symbol string
		var day time.Time
		var close decimal.Decimal
		if err := rows.Scan(&symbol, &day, &close); err != nil {
			return nil, fmt.Errorf("scan daily close: %w", err)
		}
		table.Add(day, symbol, close)
		loaded++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if loaded == 0 {
		return nil, ErrNoPrices
	}
	return table, nil
}
