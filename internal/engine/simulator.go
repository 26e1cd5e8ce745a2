package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"fundsim/types"
)

// Simulator runs the day-by-day backtest: an explicit fold over trading
// dates where each step consumes the ledger state and one date and produces
// the mutated ledger plus one DailySnapshot. Days run strictly in order;
// only signal gathering within a day fans out.
type Simulator struct {
	cfg     Config
	prices  PriceProvider
	signals SignalProvider
	sizer   *Sizer
	log     zerolog.Logger

	// ShowProgress renders a terminal progress bar over trading days.
	ShowProgress bool
}

// RunResult is the portfolio trajectory and final state of one backtest run.
type RunResult struct {
	Trajectory []types.DailySnapshot
	Final      types.PortfolioView
	Trades     []types.TradeRecord
	Rejections []RejectedOrder
}

func NewSimulator(cfg Config, prices PriceProvider, signals SignalProvider, log zerolog.Logger) *Simulator {
	return &Simulator{
		cfg:     cfg,
		prices:  prices,
		signals: signals,
		sizer:   NewSizer(cfg),
		log:     log,
	}
}

// Run executes the full simulation. Configuration problems and an empty set
// of trading dates are fatal; per-day missing prices and rejected orders are
// recorded and skipped.
func (s *Simulator) Run() (*RunResult, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	dates := s.prices.TradingDates(s.cfg.Start, s.cfg.End)
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoTradingDates,
			s.cfg.Start.Format("2006-01-02"), s.cfg.End.Format("2006-01-02"))
	}
	for _, symbol := range s.cfg.Symbols {
		if !s.hasAnyPrice(symbol, dates) {
			return nil, fmt.Errorf("%w: symbol %s has no prices in range", ErrInsufficientData, symbol)
		}
	}

	ledger := NewLedger(s.cfg)
	trajectory := make([]types.DailySnapshot, 0, len(dates))

	var bar *progressbar.ProgressBar
	if s.ShowProgress {
		bar = newProgressBar(len(dates))
	}

	for _, date := range dates {
		s.step(ledger, date)

		view := ledger.View(date)
		trajectory = append(trajectory, types.DailySnapshot{
			Date:         date,
			TotalValue:   view.TotalValue(),
			Cash:         view.Cash,
			MarketValues: marketValues(view),
		})

		if bar != nil {
			bar.Add(1)
		}
	}

	final := ledger.View(dates[len(dates)-1])
	return &RunResult{
		Trajectory: trajectory,
		Final:      final,
		Trades:     ledger.Trades(),
		Rejections: ledger.Rejections(),
	}, nil
}

// step processes one trading day: mark held positions to the day's prices,
// gather signals for every priced symbol, then aggregate, size and execute
// in universe order. Symbols without a price today are skipped and keep
// their last known valuation.
func (s *Simulator) step(ledger *Ledger, date time.Time) {
	dayPrices := make(map[string]decimal.Decimal, len(s.cfg.Symbols))
	for _, symbol := range s.cfg.Symbols {
		price, ok := s.prices.Price(date, symbol)
		if !ok {
			s.log.Warn().
				Time("date", date).
				Str("symbol", symbol).
				Msg("no price for symbol, skipping for the day")
			continue
		}
		dayPrices[symbol] = price
		ledger.MarkPrice(symbol, price)
	}

	// Signal retrieval has no data dependency between symbols; fan out and
	// join before touching the ledger. Submission stays on this goroutine in
	// universe order so execution is deterministic.
	daySignals := make([][]types.Signal, len(s.cfg.Symbols))
	var wg sync.WaitGroup
	for i, symbol := range s.cfg.Symbols {
		if _, ok := dayPrices[symbol]; !ok {
			continue
		}
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			daySignals[i] = s.signals.Signals(date, symbol)
		}(i, symbol)
	}
	wg.Wait()

	for i, symbol := range s.cfg.Symbols {
		price, ok := dayPrices[symbol]
		if !ok {
			continue
		}

		decision := Aggregate(symbol, daySignals[i])
		order, ok := s.sizer.Size(decision, ledger.View(date), price, date)
		if !ok {
			continue
		}

		if err := ledger.Execute(order); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				s.log.Warn().
					Time("date", date).
					Str("symbol", symbol).
					Str("reason", vErr.Reason).
					Msg("order rejected")
				continue
			}
			// Execute only returns validation errors today; anything else
			// would be a programming error worth surfacing loudly.
			s.log.Error().Err(err).Msg("unexpected execution error")
			continue
		}

		s.log.Debug().
			Time("date", date).
			Str("side", string(order.Side)).
			Str("symbol", order.Symbol).
			Int64("quantity", order.Quantity).
			Str("price", order.Price.String()).
			Msg("order executed")
	}
}

func (s *Simulator) hasAnyPrice(symbol string, dates []time.Time) bool {
	for _, date := range dates {
		if _, ok := s.prices.Price(date, symbol); ok {
			return true
		}
	}
	return false
}

func marketValues(view types.PortfolioView) map[string]decimal.Decimal {
	values := make(map[string]decimal.Decimal, len(view.Positions))
	for symbol, pos := range view.Positions {
		values[symbol] = pos.MarketValue()
	}
	return values
}

func newProgressBar(days int) *progressbar.ProgressBar {
	return progressbar.NewOptions(days,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Simulating trading days..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
