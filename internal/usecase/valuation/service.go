package valuation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// Service computes point-in-time position reports from the ledger.
type Service struct {
	InvestmentRepo domain.InvestmentRepository
}

// NewService creates a new valuation Service instance.
func NewService(investmentRepo domain.InvestmentRepository) *Service {
	return &Service{InvestmentRepo: investmentRepo}
}

// History returns the full purchase history for a ticker, oldest first.
// An empty ledger yields an empty slice, not an error; only the valuation
// itself refuses to run on nothing.
func (s *Service) History(ctx context.Context, ticker string) ([]*domain.InvestmentEntry, error) {
	entries, err := s.InvestmentRepo.ListByTicker(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return entries, nil
}

// Report values a ticker's accumulated purchases.
//
// The latest purchase price stands in for the current market price; no live
// quote is fetched. Total invested is the net cash put in: everything spent
// plus the final unspent balance, so carried remainders are not counted once
// per period they passed through.
//
// Returns domain.ErrNoInvestments when the ticker has no ledger entries.
func (s *Service) Report(ctx context.Context, ticker string) (*domain.PositionReport, error) {
	entries, err := s.InvestmentRepo.ListByTicker(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	if len(entries) == 0 {
		return nil, domain.ErrNoInvestments
	}

	totalShares := int64(0)
	totalSpent := decimal.Zero
	for _, entry := range entries {
		totalShares += entry.TotalShares
		totalSpent = totalSpent.Add(entry.PurchaseAmount)
	}

	latest := entries[len(entries)-1]
	totalInvested := totalSpent.Add(latest.InvestmentBalance)
	currentValue := latest.PurchasePrice.Mul(decimal.NewFromInt(totalShares))

	return &domain.PositionReport{
		Ticker:        ticker,
		Company:       latest.Company,
		AsOf:          latest.PurchaseDate,
		TotalInvested: totalInvested,
		TotalShares:   totalShares,
		LatestPrice:   latest.PurchasePrice,
		CurrentValue:  currentValue,
		ProfitLoss:    currentValue.Sub(totalInvested),
	}, nil
}
