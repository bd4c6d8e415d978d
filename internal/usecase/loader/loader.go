package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// CSV layout
//
// price_history.csv
// ticker,date,open,close,company
//
// Notes:
// - date = "2006-01-02" (day precision)
// - a header row is optional and detected by its unparseable date column
const dateLayout = "2006-01-02"

// Service bulk-loads daily price records from CSV files into the price
// history store. This is how the externally sourced dataset gets in; the
// rest of the system only ever reads it.
type Service struct {
	PriceRepo domain.PriceRepository
}

// NewService creates a new loader Service instance.
func NewService(priceRepo domain.PriceRepository) *Service {
	return &Service{PriceRepo: priceRepo}
}

// LoadFile reads a CSV file of daily prices and upserts it into the price
// history. Returns the number of records loaded.
func (s *Service) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open price file: %w", err)
	}
	defer f.Close()

	return s.Load(ctx, f)
}

// Load parses CSV rows of the form ticker,date,open,close,company and
// upserts them keyed by (ticker, date).
func (s *Service) Load(ctx context.Context, r io.Reader) (int, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV: %w", err)
	}

	records := make([]domain.PriceRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			return 0, fmt.Errorf("row %d: expected 5 columns, got %d", i+1, len(row))
		}

		date, err := time.Parse(dateLayout, row[1])
		if err != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return 0, fmt.Errorf("row %d: invalid date %q: %w", i+1, row[1], err)
		}

		open, err := decimal.NewFromString(row[2])
		if err != nil {
			return 0, fmt.Errorf("row %d: invalid open price %q: %w", i+1, row[2], err)
		}
		closePrice, err := decimal.NewFromString(row[3])
		if err != nil {
			return 0, fmt.Errorf("row %d: invalid close price %q: %w", i+1, row[3], err)
		}

		if row[0] == "" {
			return 0, fmt.Errorf("row %d: ticker cannot be empty", i+1)
		}
		if !open.IsPositive() || !closePrice.IsPositive() {
			return 0, fmt.Errorf("row %d: prices must be positive", i+1)
		}

		records = append(records, domain.PriceRecord{
			Ticker:  row[0],
			Date:    date,
			Open:    open,
			Close:   closePrice,
			Company: row[4],
		})
	}

	if len(records) == 0 {
		return 0, nil
	}

	if err := s.PriceRepo.SaveBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to save price records: %w", err)
	}

	return len(records), nil
}
