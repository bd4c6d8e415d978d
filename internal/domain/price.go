package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord represents one trading day for a ticker, as bulk-loaded from
// the historical price feed. Records are immutable once loaded.
type PriceRecord struct {
	Ticker  string
	Date    time.Time
	Open    decimal.Decimal
	Close   decimal.Decimal
	Company string
}

// MonthlyTrade is the derived monthly purchase reference: the first trading
// day of a calendar month for a ticker, priced at that day's opening price.
// It is always a pure function of PriceRecord and is never stored on its own.
// At most one MonthlyTrade exists per (ticker, year-month).
type MonthlyTrade struct {
	Ticker  string
	Date    time.Time
	Price   decimal.Decimal
	Company string
}

// Quote is the most recent known closing price for a ticker.
type Quote struct {
	Ticker  string
	Date    time.Time
	Close   decimal.Decimal
	Company string
}
