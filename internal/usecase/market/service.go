package market

import (
	"context"
	"fmt"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// Service exposes read-only market data for the interactive surface: the
// supported ticker universe and the latest known price per ticker. The
// latest-price display is independent of the DCA valuation, which values
// positions at the latest purchase price instead.
type Service struct {
	PriceRepo domain.PriceRepository
	Universe  []string
}

// NewService creates a new market Service instance.
func NewService(priceRepo domain.PriceRepository, universe []string) *Service {
	return &Service{
		PriceRepo: priceRepo,
		Universe:  universe,
	}
}

// Tickers returns the configured ticker universe.
func (s *Service) Tickers() []string {
	return s.Universe
}

// Supported reports whether a ticker is part of the configured universe.
func (s *Service) Supported(ticker string) bool {
	for _, t := range s.Universe {
		if t == ticker {
			return true
		}
	}
	return false
}

// LatestQuotes returns the most recent closing price for every ticker that
// has price history.
func (s *Service) LatestQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.PriceRepo.LatestQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest quotes: %w", err)
	}
	return quotes, nil
}
