package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=investsim sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Migrate creates the price history and ledger tables if they do not exist.
// Run once on startup; every statement is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS price_history (
			ticker TEXT NOT NULL,
			trade_date DATE NOT NULL,
			open_price NUMERIC(18,4) NOT NULL,
			close_price NUMERIC(18,4) NOT NULL,
			company TEXT NOT NULL,
			PRIMARY KEY (ticker, trade_date)
		)`,
		`CREATE TABLE IF NOT EXISTS investments (
			id BIGSERIAL PRIMARY KEY,
			ticker TEXT NOT NULL,
			company TEXT NOT NULL,
			purchase_date TIMESTAMP NOT NULL,
			purchase_price NUMERIC(18,4) NOT NULL,
			investment_amount NUMERIC(18,4) NOT NULL,
			purchase_amount NUMERIC(18,4) NOT NULL,
			investment_balance NUMERIC(18,4) NOT NULL,
			total_shares BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_investments_ticker_date
			ON investments (ticker, purchase_date)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
