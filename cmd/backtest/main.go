package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scalper-go/internal/api/twelvedata"
	"scalper-go/internal/broker"
	"scalper-go/internal/calculate"
	"scalper-go/internal/config"
	"scalper-go/internal/data"
	"scalper-go/internal/database"
	"scalper-go/internal/metrics"
	"scalper-go/internal/model"
	"scalper-go/internal/notify"
	"scalper-go/internal/policy"
	"scalper-go/internal/replay"
	"scalper-go/internal/report"
	tradesignal "scalper-go/internal/signal"
	"scalper-go/internal/trend"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting scalper backtest")
	printConfig(cfg)

	if cfg.MetricsAddr != "" {
		srv := metrics.Serve(cfg.MetricsAddr)
		defer srv.Close()
		log.Info().Str("addr", cfg.MetricsAddr).Msg("Metrics endpoint up")
	}

	bars, err := loadBars(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load price data")
	}

	bars = calculate.AttachIndicators(bars, cfg.EMAPeriod, cfg.RSIPeriod, cfg.ATRPeriod)
	bars = calculate.FilterWarmup(bars)
	if len(bars) == 0 {
		log.Fatal().Msg("No bars left after indicator warmup")
	}

	// The cap applies to the retained series, after warmup bars are gone, so
	// the replay always covers the full configured window.
	if capped := capWindow(bars, cfg.BacktestMonths); len(capped) < len(bars) {
		bars = capped
		log.Info().Int("bars", len(bars)).Msg("Series capped to backtest window")
	}

	classifier := trend.NewClassifier(cfg.Backcandles)
	signals := tradesignal.BuildSeries(bars, classifier, tradesignal.Thresholds{
		Oversold:   cfg.RSIOversold,
		Overbought: cfg.RSIOverbought,
	})
	countSignals(signals)

	variants := buildVariants(cfg)
	if err := replay.RunAll(bars, signals, variants); err != nil {
		log.Fatal().Err(err).Msg("Replay failed")
	}

	reports := make([]model.StrategyReport, 0, len(variants))
	for _, v := range variants {
		rep := report.Build(v.Policy.Name(), v.Broker.ClosedTrades(), v.Broker.EquityCurve(), v.Policy.Rejections())
		recordMetrics(rep, len(bars))
		reports = append(reports, rep)
	}

	summary := report.FormatResults(reports)
	fmt.Println(summary)

	writeReports(cfg.OutputDir, reports)
	persistReports(cfg, reports)
	notifySummary(cfg, summary)
}

// capWindow limits the series to 24*4*months bars. Zero or negative months
// leaves the series unbounded.
func capWindow(bars []model.Bar, months int) []model.Bar {
	maxBars := 24 * 4 * months
	if maxBars > 0 && len(bars) > maxBars {
		return bars[:maxBars]
	}
	return bars
}

// loadBars picks the configured data source. CSV is the default; the API
// source fetches enough history to cover the backtest window.
func loadBars(ctx context.Context, cfg *config.Config) ([]model.Bar, error) {
	switch cfg.DataSource {
	case "twelvedata":
		client := twelvedata.NewClient(twelvedata.ClientOptions{
			APIKey:         cfg.TwelveAPIKey,
			RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		})
		return client.GetHistoricalBars(ctx, cfg.Symbol, cfg.Interval, cfg.BacktestMonths)
	default:
		return data.LoadCSV(cfg.CSVFile)
	}
}

// buildVariants pairs each order-management engine with its own simulated
// account so the runs stay independent.
func buildVariants(cfg *config.Config) []replay.Variant {
	variants := make([]replay.Variant, 0, 3)

	fixedSim := broker.NewSim("fixed_martingale", cfg.Cash, cfg.Leverage)
	variants = append(variants, replay.Variant{
		Broker: fixedSim,
		Policy: policy.NewFixedOffset(fixedSim, cfg.FixedOffset(), cfg.BaseSize),
	})

	atrSim := broker.NewSim("atr_sltp", cfg.Cash, cfg.Leverage)
	variants = append(variants, replay.Variant{
		Broker: atrSim,
		Policy: policy.NewATRStopTarget(atrSim, cfg.StopATRMult, cfg.RewardRiskRatio, cfg.BaseSize),
	})

	trailSim := broker.NewSim("atr_trailing", cfg.Cash, cfg.Leverage)
	variants = append(variants, replay.Variant{
		Broker: trailSim,
		Policy: policy.NewATRTrailing(trailSim, cfg.TrailATRMult, cfg.BaseSize),
	})

	return variants
}

func countSignals(signals []model.Signal) {
	for _, s := range signals {
		switch s {
		case model.SignalBuy:
			metrics.SignalsTotal.WithLabelValues("buy").Inc()
		case model.SignalSell:
			metrics.SignalsTotal.WithLabelValues("sell").Inc()
		}
	}
}

func recordMetrics(rep model.StrategyReport, bars int) {
	metrics.BarsProcessed.WithLabelValues(rep.Strategy).Add(float64(bars))
	metrics.RejectionsTotal.WithLabelValues(rep.Strategy).Add(float64(rep.OrderRejections))
	for _, t := range rep.Trades {
		side := "long"
		if t.Direction == model.Short {
			side = "short"
		}
		metrics.OrdersTotal.WithLabelValues(rep.Strategy, side).Inc()
	}
}

func writeReports(dir string, reports []model.StrategyReport) {
	writer, err := report.NewWriter(dir)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create report writer")
		return
	}
	for _, rep := range reports {
		if err := writer.WriteStrategy(rep); err != nil {
			log.Error().Err(err).Str("strategy", rep.Strategy).Msg("Failed to write strategy report")
		}
	}
	if err := writer.WriteComparison(reports); err != nil {
		log.Error().Err(err).Msg("Failed to write comparison report")
	}
}

// persistReports saves the run to PostgreSQL when a database URL is set.
func persistReports(cfg *config.Config, reports []model.StrategyReport) {
	if cfg.DatabaseURL == "" {
		return
	}
	db, err := database.NewFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return
	}
	defer db.Close()

	for _, rep := range reports {
		runID, err := db.SaveRun(rep, cfg.Symbol, cfg.Interval)
		if err != nil {
			log.Error().Err(err).Str("strategy", rep.Strategy).Msg("Failed to save run")
			continue
		}
		if err := db.SaveTrades(runID, rep.Trades); err != nil {
			log.Error().Err(err).Str("strategy", rep.Strategy).Msg("Failed to save trades")
		}
	}
	log.Info().Msg("Run persisted to database")
}

// notifySummary posts the console summary to Telegram when configured.
func notifySummary(cfg *config.Config, summary string) {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		return
	}
	tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create telegram notifier")
		return
	}
	if err := tg.SendSummary(summary); err != nil {
		log.Error().Err(err).Msg("Failed to send telegram summary")
	}
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
		os.Exit(0)
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	log.Info().
		Str("DataSource", cfg.DataSource).
		Str("Symbol", cfg.Symbol).
		Str("Interval", cfg.Interval).
		Int("EMAPeriod", cfg.EMAPeriod).
		Int("RSIPeriod", cfg.RSIPeriod).
		Int("ATRPeriod", cfg.ATRPeriod).
		Int("Backcandles", cfg.Backcandles).
		Float64("RSIOversold", cfg.RSIOversold).
		Float64("RSIOverbought", cfg.RSIOverbought).
		Float64("Cash", cfg.Cash).
		Float64("Leverage", cfg.Leverage).
		Int("BacktestMonths", cfg.BacktestMonths).
		Msg("Configuration loaded")
}
