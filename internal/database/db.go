// Package database persists backtest runs and their trade ledgers to
// PostgreSQL. Persistence is optional; the runner only connects when a
// database URL is configured.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"scalper-go/internal/model"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection from explicit parameters.
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)
	return open(connStr)
}

// NewFromURL creates a new database connection from a postgres:// URL.
func NewFromURL(url string) (*DB, error) {
	return open(url)
}

func open(connStr string) (*DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS backtest_runs (
			id SERIAL PRIMARY KEY,
			strategy TEXT NOT NULL,
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			ran_at TIMESTAMP NOT NULL,
			total_trades INT NOT NULL,
			winning_trades INT NOT NULL,
			losing_trades INT NOT NULL,
			win_percentage DOUBLE PRECISION NOT NULL,
			profit_factor DOUBLE PRECISION NOT NULL,
			max_drawdown_pct DOUBLE PRECISION NOT NULL,
			sharpe_ratio DOUBLE PRECISION NOT NULL,
			equity_growth_pct DOUBLE PRECISION NOT NULL,
			order_rejections INT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS backtest_trades (
			id SERIAL PRIMARY KEY,
			run_id INT NOT NULL REFERENCES backtest_runs(id),
			direction TEXT NOT NULL,
			entry_time TEXT NOT NULL,
			exit_time TEXT NOT NULL,
			entry_price DOUBLE PRECISION NOT NULL,
			exit_price DOUBLE PRECISION NOT NULL,
			stop_price DOUBLE PRECISION NOT NULL,
			target_price DOUBLE PRECISION,
			units DOUBLE PRECISION NOT NULL,
			exit_reason TEXT NOT NULL,
			pnl DOUBLE PRECISION NOT NULL
		)
	`)
	return err
}

// SaveRun inserts one variant's summary and returns the new run id.
func (db *DB) SaveRun(rep model.StrategyReport, symbol, interval string) (int64, error) {
	var runID int64
	err := db.QueryRow(`
		INSERT INTO backtest_runs (
			strategy, symbol, interval, ran_at,
			total_trades, winning_trades, losing_trades, win_percentage,
			profit_factor, max_drawdown_pct, sharpe_ratio, equity_growth_pct,
			order_rejections
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`,
		rep.Strategy, symbol, interval, time.Now(),
		rep.TotalTrades, rep.WinningTrades, rep.LosingTrades, rep.WinPercentage,
		rep.ProfitFactor, rep.MaxDrawdown, rep.SharpeRatio, rep.EquityGrowthPercent,
		rep.OrderRejections,
	).Scan(&runID)
	if err != nil {
		return 0, err
	}
	return runID, nil
}

// SaveTrades inserts the run's trade ledger in one transaction.
func (db *DB) SaveTrades(runID int64, trades []model.Trade) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO backtest_trades (
			run_id, direction, entry_time, exit_time, entry_price, exit_price,
			stop_price, target_price, units, exit_reason, pnl
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range trades {
		var target sql.NullFloat64
		if t.Target != 0 {
			target = sql.NullFloat64{Float64: t.Target, Valid: true}
		}
		if _, err := stmt.Exec(
			runID, t.Direction.String(), t.EntryTime, t.ExitTime,
			t.EntryPrice, t.ExitPrice, t.Stop, target, t.Units, t.ExitReason, t.PnL,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
