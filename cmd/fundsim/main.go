package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundsim/internal/analyst"
	"fundsim/internal/engine"
	"fundsim/internal/repository"
)

const historyLookback = 60

func main() {
	_ = godotenv.Load()

	var (
		symbolsFlag   = flag.String("symbols", "AAPL,MSFT,GOOGL", "comma-separated symbol universe")
		startFlag     = flag.String("start", "", "backtest start date (YYYY-MM-DD)")
		endFlag       = flag.String("end", "", "backtest end date (YYYY-MM-DD)")
		capitalFlag   = flag.Float64("capital", 100000, "initial capital")
		logLevelFlag  = flag.String("log-level", "warn", "log level (debug|info|warn|error)")
		tradesCSVFlag = flag.String("trades-csv", "", "optional path for the trade log CSV")
		valuesCSVFlag = flag.String("trajectory-csv", "", "optional path for the daily value CSV")
	)
	flag.Parse()

	log := newLogger(*logLevelFlag)

	start, err := time.Parse("2006-01-02", *startFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -start date")
	}
	end, err := time.Parse("2006-01-02", *endFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -end date")
	}
	symbols := strings.Split(*symbolsFlag, ",")
	for i := range symbols {
		symbols[i] = strings.TrimSpace(symbols[i])
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal().Msg("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := repository.NewDatabase(ctx, dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to price store")
	}
	defer db.Close()

	// Analysts look back beyond the backtest start so indicators have warmup
	// history on day one.
	loadStart := start.AddDate(0, 0, -2*historyLookback)
	prices, err := db.LoadPriceTable(ctx, symbols, loadStart, end)
	if err != nil {
		log.Fatal().Err(err).Msg("load prices")
	}

	panel := analyst.NewPanel(prices, historyLookback,
		analyst.NewMomentum(10, 30),
		analyst.NewMeanReversion(14),
	)

	cfg := engine.NewConfig(decimal.NewFromFloat(*capitalFlag), symbols, start, end)
	sim := engine.NewSimulator(cfg, prices, panel, log)
	sim.ShowProgress = true

	result, err := sim.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	metrics, err := engine.ComputeMetrics(result.Trajectory, result.Trades, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("compute metrics")
	}

	fmt.Println()
	engine.RenderReport(os.Stdout, metrics, result, cfg)

	if *tradesCSVFlag != "" {
		if err := writeCSV(*tradesCSVFlag, func(f *os.File) error {
			return engine.WriteTradesCSV(f, result.Trades)
		}); err != nil {
			log.Fatal().Err(err).Msg("write trades csv")
		}
	}
	if *valuesCSVFlag != "" {
		if err := writeCSV(*valuesCSVFlag, func(f *os.File) error {
			return engine.WriteTrajectoryCSV(f, result.Trajectory)
		}); err != nil {
			log.Fatal().Err(err).Msg("write trajectory csv")
		}
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(lvl)
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}
