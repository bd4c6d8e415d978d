package dca

import (
	"github.com/shopspring/decimal"

	"github.com/kelsier27/investsim-backend/internal/domain"
)

// Plan folds a fixed per-period contribution over an ordered monthly trade
// sequence and returns the resulting ledger entries, one per period.
//
// Each period the contribution plus the carried balance becomes the available
// cash; whole shares are bought at the period's reference price (floor, never
// round-to-nearest); whatever cannot buy a full share carries into the next
// period. A price above the available cash buys zero shares and carries the
// full amount forward.
//
// Plan is pure: it performs no I/O and is deterministic for a given trade
// sequence, contribution and opening balance. Persisting the entries is the
// caller's concern.
func Plan(trades []domain.MonthlyTrade, contribution, openingBalance decimal.Decimal) []domain.InvestmentEntry {
	entries := make([]domain.InvestmentEntry, 0, len(trades))
	balance := openingBalance

	for _, trade := range trades {
		// A non-positive price cannot be purchased against; the loader
		// rejects such records, so this only guards malformed input.
		if !trade.Price.IsPositive() {
			continue
		}

		available := contribution.Add(balance)
		shares := available.Div(trade.Price).Floor()
		spent := trade.Price.Mul(shares)
		balance = available.Sub(spent)

		entries = append(entries, domain.InvestmentEntry{
			Ticker:            trade.Ticker,
			Company:           trade.Company,
			PurchaseDate:      trade.Date,
			PurchasePrice:     trade.Price,
			InvestmentAmount:  available,
			PurchaseAmount:    spent,
			InvestmentBalance: balance,
			TotalShares:       shares.IntPart(),
		})
	}

	return entries
}
