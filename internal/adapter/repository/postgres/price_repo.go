package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// priceRepository implements domain.PriceRepository
type priceRepository struct {
	db *DB
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *DB) domain.PriceRepository {
	return &priceRepository{db: db}
}

// MonthlyOpenings returns the first trading day of each calendar month for a
// ticker, priced at that day's open, ordered by date ascending. The primary
// key on (ticker, trade_date) makes same-day duplicates unrepresentable.
func (r *priceRepository) MonthlyOpenings(ctx context.Context, ticker string) ([]domain.MonthlyTrade, error) {
	query := `
		SELECT DISTINCT ON (date_trunc('month', trade_date))
			ticker, trade_date, open_price, company
		FROM price_history
		WHERE ticker = $1
		ORDER BY date_trunc('month', trade_date), trade_date
	`

	rows, err := r.db.QueryContext(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly openings: %w", err)
	}
	defer rows.Close()

	trades := make([]domain.MonthlyTrade, 0)
	for rows.Next() {
		var trade domain.MonthlyTrade
		var priceStr string

		if err := rows.Scan(&trade.Ticker, &trade.Date, &priceStr, &trade.Company); err != nil {
			return nil, fmt.Errorf("failed to scan monthly opening: %w", err)
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse open_price: %w", err)
		}
		trade.Price = price

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read monthly openings: %w", err)
	}

	return trades, nil
}

// LatestQuotes returns the most recent closing price per ticker, ordered by
// ticker.
func (r *priceRepository) LatestQuotes(ctx context.Context) ([]domain.Quote, error) {
	query := `
		SELECT DISTINCT ON (ticker)
			ticker, trade_date, close_price, company
		FROM price_history
		ORDER BY ticker, trade_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]domain.Quote, 0)
	for rows.Next() {
		var quote domain.Quote
		var closeStr string

		if err := rows.Scan(&quote.Ticker, &quote.Date, &closeStr, &quote.Company); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}

		closePrice, err := decimal.NewFromString(closeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse close_price: %w", err)
		}
		quote.Close = closePrice

		quotes = append(quotes, quote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read latest quotes: %w", err)
	}

	return quotes, nil
}

// SaveBatch upserts daily price records inside one database transaction.
func (r *priceRepository) SaveBatch(ctx context.Context, records []domain.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO price_history (ticker, trade_date, open_price, close_price, company)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ticker, trade_date) DO UPDATE SET
			open_price = EXCLUDED.open_price,
			close_price = EXCLUDED.close_price,
			company = EXCLUDED.company
	`

	for _, record := range records {
		_, err := dbTx.ExecContext(ctx, query,
			record.Ticker,
			record.Date,
			record.Open.String(),
			record.Close.String(),
			record.Company,
		)
		if err != nil {
			return fmt.Errorf("failed to insert price record: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
