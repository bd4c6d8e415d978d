package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// investmentRepository implements domain.InvestmentRepository
type investmentRepository struct {
	db *DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *DB) domain.InvestmentRepository {
	return &investmentRepository{db: db}
}

// Append inserts a new ledger entry and returns the ID assigned by the
// database sequence.
func (r *investmentRepository) Append(ctx context.Context, entry *domain.InvestmentEntry) (int64, error) {
	query := `
		INSERT INTO investments (ticker, company, purchase_date, purchase_price,
			investment_amount, purchase_amount, investment_balance, total_shares)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		entry.Ticker,
		entry.Company,
		entry.PurchaseDate,
		entry.PurchasePrice.String(),
		entry.InvestmentAmount.String(),
		entry.PurchaseAmount.String(),
		entry.InvestmentBalance.String(),
		entry.TotalShares,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert investment entry: %w", err)
	}

	return id, nil
}

// ListByTicker returns all ledger entries for a ticker sorted by purchase
// date ascending; an empty slice if none exist.
func (r *investmentRepository) ListByTicker(ctx context.Context, ticker string) ([]*domain.InvestmentEntry, error) {
	query := `
		SELECT id, ticker, company, purchase_date, purchase_price,
			investment_amount, purchase_amount, investment_balance, total_shares
		FROM investments
		WHERE ticker = $1
		ORDER BY purchase_date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.InvestmentEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read investments: %w", err)
	}

	return entries, nil
}

// LastByTicker returns the entry with the latest purchase date for a ticker,
// or (nil, nil) when the ticker has no entries.
func (r *investmentRepository) LastByTicker(ctx context.Context, ticker string) (*domain.InvestmentEntry, error) {
	query := `
		SELECT id, ticker, company, purchase_date, purchase_price,
			investment_amount, purchase_amount, investment_balance, total_shares
		FROM investments
		WHERE ticker = $1
		ORDER BY purchase_date DESC, id DESC
		LIMIT 1
	`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, ticker))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return entry, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*domain.InvestmentEntry, error) {
	var entry domain.InvestmentEntry
	var priceStr, amountStr, purchaseStr, balanceStr string

	err := row.Scan(
		&entry.ID,
		&entry.Ticker,
		&entry.Company,
		&entry.PurchaseDate,
		&priceStr,
		&amountStr,
		&purchaseStr,
		&balanceStr,
		&entry.TotalShares,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan investment entry: %w", err)
	}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"purchase_price", priceStr, &entry.PurchasePrice},
		{"investment_amount", amountStr, &entry.InvestmentAmount},
		{"purchase_amount", purchaseStr, &entry.PurchaseAmount},
		{"investment_balance", balanceStr, &entry.InvestmentBalance},
	}
	for _, f := range fields {
		value, err := decimal.NewFromString(f.raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
		*f.dst = value
	}

	return &entry, nil
}
