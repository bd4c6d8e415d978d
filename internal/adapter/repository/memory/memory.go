package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// Store is an in-memory stand-in for the Postgres adapters. It backs the
// handler tests and the --demo serve mode, where no database is available.
type Store struct {
	mu      sync.RWMutex
	prices  map[string][]domain.PriceRecord // by ticker
	entries map[string][]*domain.InvestmentEntry
	nextID  int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		prices:  make(map[string][]domain.PriceRecord),
		entries: make(map[string][]*domain.InvestmentEntry),
	}
}

/* ---- Price repo ---- */

type priceRepo struct{ s *Store }

// NewPriceRepository returns an in-memory domain.PriceRepository.
func NewPriceRepository(s *Store) domain.PriceRepository { return &priceRepo{s: s} }

func (r *priceRepo) MonthlyOpenings(ctx context.Context, ticker string) ([]domain.MonthlyTrade, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := make([]domain.PriceRecord, len(r.s.prices[ticker]))
	copy(records, r.s.prices[ticker])
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	trades := make([]domain.MonthlyTrade, 0)
	seen := make(map[int]bool) // year*100 + month
	for _, record := range records {
		key := record.Date.Year()*100 + int(record.Date.Month())
		if seen[key] {
			continue
		}
		seen[key] = true
		trades = append(trades, domain.MonthlyTrade{
			Ticker:  record.Ticker,
			Date:    record.Date,
			Price:   record.Open,
			Company: record.Company,
		})
	}

	return trades, nil
}

func (r *priceRepo) LatestQuotes(ctx context.Context) ([]domain.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	quotes := make([]domain.Quote, 0, len(r.s.prices))
	for ticker, records := range r.s.prices {
		if len(records) == 0 {
			continue
		}
		latest := records[0]
		for _, record := range records[1:] {
			if record.Date.After(latest.Date) {
				latest = record
			}
		}
		quotes = append(quotes, domain.Quote{
			Ticker:  ticker,
			Date:    latest.Date,
			Close:   latest.Close,
			Company: latest.Company,
		})
	}

	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Ticker < quotes[j].Ticker })
	return quotes, nil
}

func (r *priceRepo) SaveBatch(ctx context.Context, records []domain.PriceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, record := range records {
		existing := r.s.prices[record.Ticker]
		replaced := false
		for i, old := range existing {
			if old.Date.Equal(record.Date) {
				existing[i] = record
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, record)
		}
		r.s.prices[record.Ticker] = existing
	}

	return nil
}

/* ---- Investment repo ---- */

type investmentRepo struct{ s *Store }

// NewInvestmentRepository returns an in-memory domain.InvestmentRepository.
func NewInvestmentRepository(s *Store) domain.InvestmentRepository { return &investmentRepo{s: s} }

func (r *investmentRepo) Append(ctx context.Context, entry *domain.InvestmentEntry) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID++
	stored := *entry
	stored.ID = r.s.nextID
	r.s.entries[entry.Ticker] = append(r.s.entries[entry.Ticker], &stored)

	return stored.ID, nil
}

func (r *investmentRepo) ListByTicker(ctx context.Context, ticker string) ([]*domain.InvestmentEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]*domain.InvestmentEntry, 0, len(r.s.entries[ticker]))
	for _, entry := range r.s.entries[ticker] {
		clone := *entry
		entries = append(entries, &clone)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].PurchaseDate.Equal(entries[j].PurchaseDate) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].PurchaseDate.Before(entries[j].PurchaseDate)
	})

	return entries, nil
}

func (r *investmentRepo) LastByTicker(ctx context.Context, ticker string) (*domain.InvestmentEntry, error) {
	entries, err := r.ListByTicker(ctx, ticker)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return entries[len(entries)-1], nil
}
