package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	// Data source
	DataSource   string `env:"DATA_SOURCE" envDefault:"csv"` // csv or twelvedata
	CSVFile      string `env:"CSV_FILE" envDefault:"EURUSD_Candlestick_5_M_Data.csv"`
	TwelveAPIKey string `env:"TWELVE_API_KEY" envDefault:"-"`
	Symbol       string `env:"SYMBOL" envDefault:"EUR/USD"`
	Interval     string `env:"INTERVAL" envDefault:"5min"`

	// Indicators
	EMAPeriod int `env:"EMA_PERIOD" envDefault:"200"`
	RSIPeriod int `env:"RSI_PERIOD" envDefault:"3"`
	ATRPeriod int `env:"ATR_PERIOD" envDefault:"14"`

	// Signal derivation
	Backcandles   int     `env:"BACKCANDLES" envDefault:"8"`
	RSIOversold   float64 `env:"RSI_OVERSOLD" envDefault:"10"`
	RSIOverbought float64 `env:"RSI_OVERBOUGHT" envDefault:"90"`

	// Order management
	FixedOffsetPips float64 `env:"FIXED_OFFSET_PIPS" envDefault:"45"`
	StopATRMult     float64 `env:"STOP_ATR_MULT" envDefault:"1.3"`
	RewardRiskRatio float64 `env:"REWARD_RISK_RATIO" envDefault:"1.3"`
	TrailATRMult    float64 `env:"TRAIL_ATR_MULT" envDefault:"1.5"`
	BaseSize        float64 `env:"BASE_SIZE" envDefault:"0.2"`

	// Simulated account
	Cash     float64 `env:"CASH" envDefault:"100"`
	Leverage float64 `env:"LEVERAGE" envDefault:"50"`

	// Replay
	BacktestMonths int    `env:"BACKTEST_MONTHS" envDefault:"30"`
	OutputDir      string `env:"OUTPUT_DIR" envDefault:"backtest"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds

	// Optional integrations
	DatabaseURL      string `env:"DATABASE_URL" envDefault:""`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
	MetricsAddr      string `env:"METRICS_ADDR" envDefault:""`
}

// FixedOffset converts the pip-denominated offset into a price distance.
// One pip on a 5-decimal quote is 1e-4.
func (c *Config) FixedOffset() float64 {
	return c.FixedOffsetPips * 1e-4
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.DataSource = getEnvWithDefault("DATA_SOURCE", "csv")
	cfg.CSVFile = getEnvWithDefault("CSV_FILE", "EURUSD_Candlestick_5_M_Data.csv")
	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.Symbol = getEnvWithDefault("SYMBOL", "EUR/USD")
	cfg.Interval = getEnvWithDefault("INTERVAL", "5min")

	cfg.EMAPeriod = getEnvIntWithDefault("EMA_PERIOD", 200)
	cfg.RSIPeriod = getEnvIntWithDefault("RSI_PERIOD", 3)
	cfg.ATRPeriod = getEnvIntWithDefault("ATR_PERIOD", 14)

	cfg.Backcandles = getEnvIntWithDefault("BACKCANDLES", 8)
	cfg.RSIOversold = getEnvFloatWithDefault("RSI_OVERSOLD", 10)
	cfg.RSIOverbought = getEnvFloatWithDefault("RSI_OVERBOUGHT", 90)

	cfg.FixedOffsetPips = getEnvFloatWithDefault("FIXED_OFFSET_PIPS", 45)
	cfg.StopATRMult = getEnvFloatWithDefault("STOP_ATR_MULT", 1.3)
	cfg.RewardRiskRatio = getEnvFloatWithDefault("REWARD_RISK_RATIO", 1.3)
	cfg.TrailATRMult = getEnvFloatWithDefault("TRAIL_ATR_MULT", 1.5)
	cfg.BaseSize = getEnvFloatWithDefault("BASE_SIZE", 0.2)

	cfg.Cash = getEnvFloatWithDefault("CASH", 100)
	cfg.Leverage = getEnvFloatWithDefault("LEVERAGE", 50)

	cfg.BacktestMonths = getEnvIntWithDefault("BACKTEST_MONTHS", 30)
	cfg.OutputDir = getEnvWithDefault("OUTPUT_DIR", "backtest")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
