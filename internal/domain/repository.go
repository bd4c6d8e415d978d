package domain

import (
	"context"
	"errors"
)

// ErrNoInvestments is returned when a valuation is requested for a ticker
// that has no ledger entries yet.
var ErrNoInvestments = errors.New("no investments found for ticker")

// PriceRepository defines read access to the historical price data source.
// The price history is treated as an external, bulk-loaded dataset: this
// service only ever reads it, except for the bulk loader's SaveBatch.
type PriceRepository interface {
	// MonthlyOpenings returns one trade per (ticker, year-month): the record
	// with the earliest date in that month, priced at its opening price,
	// ordered by date ascending. A ticker with no records yields an empty
	// slice, not an error.
	MonthlyOpenings(ctx context.Context, ticker string) ([]MonthlyTrade, error)

	// LatestQuotes returns the most recent closing price per ticker,
	// ordered by ticker.
	LatestQuotes(ctx context.Context) ([]Quote, error)

	// SaveBatch upserts daily price records, keyed by (ticker, date).
	SaveBatch(ctx context.Context, records []PriceRecord) error
}

// InvestmentRepository defines the append-only ledger of simulated purchases.
// Updates and deletes are not part of the contract.
type InvestmentRepository interface {
	// Append inserts a new entry and returns its assigned ascending ID.
	Append(ctx context.Context, entry *InvestmentEntry) (int64, error)

	// ListByTicker returns all entries for a ticker sorted by purchase date
	// ascending; an empty slice if none exist.
	ListByTicker(ctx context.Context, ticker string) ([]*InvestmentEntry, error)

	// LastByTicker returns the entry with the latest purchase date for a
	// ticker, or (nil, nil) when the ticker has no entries.
	LastByTicker(ctx context.Context, ticker string) (*InvestmentEntry, error)
}
