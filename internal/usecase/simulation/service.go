package simulation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kelsier27/investsim-backend/internal/domain"
	"github.com/kelsier27/investsim-backend/internal/usecase/dca"
)

// Service runs the simulated purchase generation for a ticker.
type Service struct {
	PriceRepo      domain.PriceRepository
	InvestmentRepo domain.InvestmentRepository
	Contribution   decimal.Decimal // fixed cash made available each period
}

// NewService creates a new simulation Service instance.
func NewService(priceRepo domain.PriceRepository, investmentRepo domain.InvestmentRepository, contribution decimal.Decimal) *Service {
	return &Service{
		PriceRepo:      priceRepo,
		InvestmentRepo: investmentRepo,
		Contribution:   contribution,
	}
}

// Generate derives the ticker's monthly trades, folds the contribution over
// them and appends the resulting entries to the ledger. It returns the
// entries appended by this run, with their assigned IDs.
//
// Re-running for a ticker that already has ledger entries resumes rather
// than duplicates: only months strictly after the last entry's purchase date
// are folded, seeded with that entry's carried balance. A run with no new
// months appends nothing. This also means a run interrupted by a storage
// failure leaves a usable prefix that the next trigger continues from.
func (s *Service) Generate(ctx context.Context, ticker string) ([]domain.InvestmentEntry, error) {
	last, err := s.InvestmentRepo.LastByTicker(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to read last ledger entry: %w", err)
	}

	trades, err := s.PriceRepo.MonthlyOpenings(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly trades: %w", err)
	}

	opening := decimal.Zero
	if last != nil {
		opening = last.InvestmentBalance

		remaining := trades[:0:0]
		for _, trade := range trades {
			if trade.Date.After(last.PurchaseDate) {
				remaining = append(remaining, trade)
			}
		}
		trades = remaining
	}

	// An empty sequence is a valid "nothing to do" state, not an error.
	entries := dca.Plan(trades, s.Contribution, opening)

	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("generated entry for %s is invalid: %w", ticker, err)
		}

		id, err := s.InvestmentRepo.Append(ctx, &entries[i])
		if err != nil {
			return nil, fmt.Errorf("failed to append ledger entry: %w", err)
		}
		entries[i].ID = id
	}

	return entries, nil
}
