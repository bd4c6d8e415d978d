package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentEntry represents one simulated monthly purchase in the ledger.
// Entries are append-only: they are never updated or deleted once written.
type InvestmentEntry struct {
	ID                int64 // assigned by the ledger on append, ascending
	Ticker            string
	Company           string
	PurchaseDate      time.Time
	PurchasePrice     decimal.Decimal
	InvestmentAmount  decimal.Decimal // cash made available this period
	PurchaseAmount    decimal.Decimal // cash actually spent = price * shares
	InvestmentBalance decimal.Decimal // leftover carried to the next period
	TotalShares       int64           // whole shares bought this period
}

// Validate ensures the entry adheres to the ledger rules:
// shares are a whole non-negative number, the purchase amount is exactly
// price times shares, the balance is exactly the unspent remainder, and the
// balance is too small to afford one more share.
func (e *InvestmentEntry) Validate() error {
	if e.Ticker == "" {
		return errors.New("ticker cannot be empty")
	}

	if !e.PurchasePrice.IsPositive() {
		return errors.New("purchase price must be positive")
	}

	if e.TotalShares < 0 {
		return errors.New("total shares cannot be negative")
	}

	shares := decimal.NewFromInt(e.TotalShares)
	if !e.PurchaseAmount.Equal(e.PurchasePrice.Mul(shares)) {
		return errors.New("purchase amount must equal purchase price times total shares")
	}

	if !e.InvestmentBalance.Equal(e.InvestmentAmount.Sub(e.PurchaseAmount)) {
		return errors.New("investment balance must equal investment amount minus purchase amount")
	}

	if e.InvestmentBalance.IsNegative() {
		return errors.New("investment balance cannot be negative")
	}

	// A balance at or above the price means one more share was affordable.
	if e.InvestmentBalance.GreaterThanOrEqual(e.PurchasePrice) {
		return errors.New("investment balance must be less than purchase price")
	}

	return nil
}
